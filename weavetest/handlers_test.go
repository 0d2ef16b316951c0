package weavetest

import (
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/weavetest/assert"
)

func TestHandler(t *testing.T) {
	h := Handler{
		CheckResult:   barter.CheckResult{GasAllocated: 5},
		DeliverResult: barter.DeliverResult{Data: []byte("offer")},
	}

	cres, err := h.Check(nil, nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, int64(5), cres.GasAllocated)

	dres, err := h.Deliver(nil, nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, []byte("offer"), dres.Data)

	h.CheckErr = errors.ErrUnauthorized
	h.DeliverErr = errors.ErrNotFound
	_, err = h.Check(nil, nil, nil)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = h.Deliver(nil, nil, nil)
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.Equal(t, 4, h.CallCount())
}

func TestDecorator(t *testing.T) {
	cases := map[string]struct {
		dec         Decorator
		wantErr     *errors.Error
		wantHandled int
	}{
		"calls pass through": {
			dec:         Decorator{},
			wantHandled: 2,
		},
		"errors stop the call": {
			dec:     Decorator{CheckErr: errors.ErrUnauthorized, DeliverErr: errors.ErrUnauthorized},
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var h Handler
			_, err := tc.dec.Check(nil, nil, nil, &h)
			assert.IsErr(t, tc.wantErr, err)
			_, err = tc.dec.Deliver(nil, nil, nil, &h)
			assert.IsErr(t, tc.wantErr, err)

			assert.Equal(t, 2, tc.dec.CallCount())
			assert.Equal(t, tc.wantHandled, h.CallCount())
		})
	}
}
