package weavetest

import (
	"context"

	"github.com/iov-one/barter"
)

// Auth authenticates a single fixed signer, or nobody when Signer is nil.
type Auth struct {
	Signer barter.Condition
}

func (a *Auth) GetConditions(barter.Context) []barter.Condition {
	if a.Signer == nil {
		return nil
	}
	return []barter.Condition{a.Signer}
}

func (a *Auth) HasAddress(_ barter.Context, addr barter.Address) bool {
	return a.Signer != nil && addr.Equals(a.Signer.Address())
}

// CtxAuth authenticates the conditions stored in the context under Key,
// so that a single handler instance can serve different signers.
type CtxAuth struct {
	Key string
}

func (a *CtxAuth) SetConditions(ctx barter.Context, conds ...barter.Condition) barter.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx barter.Context) []barter.Condition {
	conds, _ := ctx.Value(a.Key).([]barter.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx barter.Context, addr barter.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
