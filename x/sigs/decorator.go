/*
Package sigs verifies the ed25519 signatures of a transaction and keeps a
sequence per signer, so that a signed transaction cannot be replayed.
*/
package sigs

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

const (
	signatureVerifyCost = 500
)

// RegisterQuery will register this bucket as "/auth"
func RegisterQuery(qr barter.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures and adds the signers to the context.
// A transaction without any signature is rejected.
type Decorator struct{}

var _ barter.Decorator = Decorator{}

// NewDecorator returns a decorator that verifies signatures against the
// chain id found in the context.
func NewDecorator() Decorator {
	return Decorator{}
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	ctx, signers, err := d.verify(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	// Only valid signatures are charged for.
	res.GasAllocated += int64(signers * signatureVerifyCost)
	return res, nil
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	ctx, _, err := d.verify(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

// verify increments the sequence of every signer and returns the context
// carrying the signer conditions. Transactions that cannot carry
// signatures pass through unchanged.
func (Decorator) verify(ctx barter.Context, store barter.KVStore, tx barter.Tx) (barter.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(store, stx, barter.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
