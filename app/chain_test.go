package app

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/weavetest"
	"github.com/stretchr/testify/assert"
)

// panicHandler panics on every call.
type panicHandler struct{}

func (panicHandler) Check(barter.Context, barter.KVStore, barter.Tx) (*barter.CheckResult, error) {
	panic("check")
}

func (panicHandler) Deliver(barter.Context, barter.KVStore, barter.Tx) (*barter.DeliverResult, error) {
	panic("deliver")
}

func TestChain(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}
	var nilDecorator *weavetest.Decorator
	h := &weavetest.Handler{}

	stack := ChainDecorators(
		c1,
		NewLogging(),
		nilDecorator,
		NewRecovery(),
	).Chain(c2).WithHandler(h)

	ctx := context.Background()
	_, err := stack.Check(ctx, nil, nil)
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, nil)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// an error stops the chain
	c2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, nil, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 3, c1.CallCount())
	assert.Equal(t, 3, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestRecovery(t *testing.T) {
	stack := ChainDecorators(NewRecovery()).WithHandler(panicHandler{})

	ctx := context.Background()
	_, err := stack.Check(ctx, nil, nil)
	assert.True(t, errors.ErrPanic.Is(err), "%+v", err)
	_, err = stack.Deliver(ctx, nil, nil)
	assert.True(t, errors.ErrPanic.Is(err), "%+v", err)

	// without recovery the panic escapes
	assert.Panics(t, func() {
		_, _ = ChainDecorators().WithHandler(panicHandler{}).Deliver(ctx, nil, nil)
	})
}
