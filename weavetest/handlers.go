package weavetest

import "github.com/iov-one/barter"

// Handler returns the configured results and counts how many times each
// method was called.
type Handler struct {
	CheckResult barter.CheckResult
	CheckErr    error
	checks      int

	DeliverResult barter.DeliverResult
	DeliverErr    error
	delivers      int
}

var _ barter.Handler = (*Handler)(nil)

func (h *Handler) Check(barter.Context, barter.KVStore, barter.Tx) (*barter.CheckResult, error) {
	h.checks++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(barter.Context, barter.KVStore, barter.Tx) (*barter.DeliverResult, error) {
	h.delivers++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CallCount returns the number of Check and Deliver calls.
func (h *Handler) CallCount() int {
	return h.checks + h.delivers
}

// Decorator passes every call to the next handler unless an error is
// configured for that method. Failed calls are counted as well.
type Decorator struct {
	CheckErr error
	checks   int

	DeliverErr error
	delivers   int
}

var _ barter.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	d.delivers++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// CallCount returns the number of Check and Deliver calls.
func (d *Decorator) CallCount() int {
	return d.checks + d.delivers
}
