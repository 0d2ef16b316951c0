package x

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/weavetest/assert"
)

func TestSigner(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	carol := weavetest.NewCondition()

	ctxAuth := &weavetest.CtxAuth{Key: "auth"}

	cases := map[string]struct {
		ctx        barter.Context
		auth       Authenticator
		wantSigner barter.Address
		wantErr    *errors.Error
		wantAll    []barter.Condition
	}{
		"unsigned": {
			ctx:     context.Background(),
			auth:    &weavetest.Auth{},
			wantErr: errors.ErrUnauthorized,
		},
		"single signer": {
			ctx:        context.Background(),
			auth:       &weavetest.Auth{Signer: alice},
			wantSigner: alice.Address(),
			wantAll:    []barter.Condition{alice},
		},
		"first authenticator wins": {
			ctx: context.Background(),
			auth: ChainAuth(
				&weavetest.Auth{Signer: bob},
				&weavetest.Auth{Signer: alice}),
			wantSigner: bob.Address(),
			wantAll:    []barter.Condition{bob, alice},
		},
		"empty authenticators are skipped": {
			ctx:        ctxAuth.SetConditions(context.Background(), alice),
			auth:       ChainAuth(&weavetest.Auth{}, ctxAuth),
			wantSigner: alice.Address(),
			wantAll:    []barter.Condition{alice},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			signer, err := Signer(tc.ctx, tc.auth)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantSigner, signer)
			assert.Equal(t, tc.wantAll, tc.auth.GetConditions(tc.ctx))

			for _, c := range tc.wantAll {
				assert.Equal(t, true, tc.auth.HasAddress(tc.ctx, c.Address()))
			}
			assert.Equal(t, false, tc.auth.HasAddress(tc.ctx, carol.Address()))
		})
	}
}
