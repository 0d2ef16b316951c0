package vault

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendHandler(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	punk := asset.NFT("PUNK", 1)

	cases := map[string]struct {
		signer         barter.Condition
		msg            barter.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantBob        []asset.Asset
	}{
		"owner sends": {
			signer: alice,
			msg: &SendMsg{
				Metadata:    &barter.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				Asset:       &punk,
				Memo:        "enjoy",
			},
			wantBob: []asset.Asset{punk},
		},
		"missing owner signature": {
			signer: bob,
			msg: &SendMsg{
				Metadata:    &barter.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				Asset:       &punk,
			},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"asset not owned": {
			signer: alice,
			msg: &SendMsg{
				Metadata:    &barter.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				Asset:       &asset.Asset{Ticker: "PUNK", Nonce: 2, Quantity: 1},
			},
			wantDeliverErr: errors.ErrAmount,
		},
		"invalid message": {
			signer: alice,
			msg: &SendMsg{
				Metadata: &barter.Metadata{Schema: 1},
				Source:   alice.Address(),
				Asset:    &punk,
			},
			wantCheckErr:   errors.ErrInput,
			wantDeliverErr: errors.ErrInput,
		},
		"unknown message": {
			signer:         alice,
			msg:            &weavetest.Msg{RoutePath: "vault/other"},
			wantCheckErr:   errors.ErrType,
			wantDeliverErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			require.NoError(t, ctrl.Issue(db, alice.Address(), punk))

			auth := &weavetest.Auth{Signer: tc.signer}
			h := NewSendHandler(auth, ctrl)
			tx := &weavetest.Tx{Msg: tc.msg}
			ctx := context.Background()

			cache := db.CacheWrap()
			_, err := h.Check(ctx, cache, tx)
			assert.True(t, tc.wantCheckErr.Is(err), "check: %+v", err)
			cache.Discard()

			_, err = h.Deliver(ctx, db, tx)
			assert.True(t, tc.wantDeliverErr.Is(err), "deliver: %+v", err)

			got, err := ctrl.Balance(db, bob.Address())
			require.NoError(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestSendMsgValidate(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	punk := asset.NFT("PUNK", 1)

	cases := map[string]struct {
		msg     *SendMsg
		wantErr *errors.Error
	}{
		"valid": {
			msg: &SendMsg{Metadata: &barter.Metadata{Schema: 1}, Source: addr, Destination: addr, Asset: &punk},
		},
		"missing metadata": {
			msg:     &SendMsg{Source: addr, Destination: addr, Asset: &punk},
			wantErr: errors.ErrMetadata,
		},
		"missing asset": {
			msg:     &SendMsg{Metadata: &barter.Metadata{Schema: 1}, Source: addr, Destination: addr},
			wantErr: errors.ErrAmount,
		},
		"zero quantity": {
			msg:     &SendMsg{Metadata: &barter.Metadata{Schema: 1}, Source: addr, Destination: addr, Asset: &asset.Asset{Ticker: "IOV"}},
			wantErr: errors.ErrAmount,
		},
		"memo too long": {
			msg: &SendMsg{
				Metadata:    &barter.Metadata{Schema: 1},
				Source:      addr,
				Destination: addr,
				Asset:       &punk,
				Memo:        string(make([]byte, maxMemoSize+1)),
			},
			wantErr: errors.ErrMsg,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected validation error: %+v", err)
			}
		})
	}
}
