package barter_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/weavetest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	ctx := context.Background()

	_, ok := barter.GetHeight(ctx)
	assert.Equal(t, false, ok)

	ctx = barter.WithHeight(ctx, 7)
	h, ok := barter.GetHeight(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, int64(7), h)

	assert.Panics(t, func() { barter.WithHeight(ctx, 8) })
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()
	assert.Panics(t, func() { barter.GetChainID(ctx) })
	assert.Panics(t, func() { barter.WithChainID(ctx, "no") })

	ctx = barter.WithChainID(ctx, "barter-test")
	assert.Equal(t, "barter-test", barter.GetChainID(ctx))
	assert.Panics(t, func() { barter.WithChainID(ctx, "barter-other") })
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, barter.DefaultLogger, barter.GetLogger(ctx))

	var buf bytes.Buffer
	ctx = barter.WithLogger(ctx, log.NewTMLogger(&buf))
	ctx = barter.WithLogInfo(ctx, "offer", 12)
	barter.GetLogger(ctx).Info("created")

	if !strings.Contains(buf.String(), "offer=12") {
		t.Fatalf("log info not attached: %q", buf.String())
	}
}
