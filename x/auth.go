package x

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Authenticator reveals who authorized the current transaction. Handlers
// receive it in their constructor, so the signature scheme can be
// replaced without touching them.
type Authenticator interface {
	// GetConditions returns all conditions fulfilled by the transaction,
	// the main signer first.
	GetConditions(barter.Context) []barter.Condition
	// HasAddress checks if any fulfilled condition has this address.
	HasAddress(barter.Context, barter.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines the conditions of all Authenticators, in order.
func (m MultiAuth) GetConditions(ctx barter.Context) []barter.Condition {
	var res []barter.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true if any Authenticator knows the address.
func (m MultiAuth) HasAddress(ctx barter.Context, addr barter.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// Signer returns the address of the main signer of the transaction. Every
// registry operation acts on behalf of this address.
func Signer(ctx barter.Context, auth Authenticator) (barter.Address, error) {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return conds[0].Address(), nil
}
