package offer

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/vault"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r barter.Registry, auth x.Authenticator, bank vault.Controller) {
	ctrl := NewController(NewBucket(), bank)
	r.Handle(&CreateMsg{}, CreateOfferHandler{auth: auth, ctrl: ctrl})
	r.Handle(&CancelMsg{}, CancelOfferHandler{auth: auth, ctrl: ctrl})
	r.Handle(&AcceptMsg{}, AcceptOfferHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register the offer bucket as "/offers" with its
// indexes under "/offers/creator" and "/offers/wanted".
func RegisterQuery(qr barter.QueryRouter) {
	NewBucket().Register("offers", qr)
}

// CreateOfferHandler stores a new offer and takes custody of the deposit.
type CreateOfferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ barter.Handler = CreateOfferHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateOfferHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: createOfferCost}, nil
}

// Deliver creates the offer. The result data is the id of the new offer
// as returned by IDKey.
func (h CreateOfferHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, creator, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.Create(db, creator, *msg.Deposit, *msg.Requested, msg.Counterparty)
	if err != nil {
		offersRejected.WithLabelValues(msg.Path()).Inc()
		return nil, err
	}
	offersCreated.Inc()
	barter.GetLogger(ctx).Info("offer created",
		"offer", id,
		"creator", creator,
		"deposit", msg.Deposit.Format(),
		"requested", msg.Requested.Format())
	return &barter.DeliverResult{Data: IDKey(id)}, nil
}

func (h CreateOfferHandler) validate(ctx barter.Context, tx barter.Tx) (*CreateMsg, barter.Address, error) {
	var msg CreateMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	creator, err := x.Signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, creator, nil
}

// CancelOfferHandler removes an offer and returns the deposit to its
// creator.
type CancelOfferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ barter.Handler = CancelOfferHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CancelOfferHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: cancelOfferCost}, nil
}

// Deliver cancels the offer if the signer is its creator.
func (h CancelOfferHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	offer, err := h.ctrl.Cancel(db, signer, msg.OfferID)
	if err != nil {
		offersRejected.WithLabelValues(msg.Path()).Inc()
		return nil, err
	}
	offersCancelled.Inc()
	barter.GetLogger(ctx).Info("offer cancelled",
		"offer", msg.OfferID,
		"creator", offer.Creator)
	return &barter.DeliverResult{}, nil
}

func (h CancelOfferHandler) validate(ctx barter.Context, tx barter.Tx) (*CancelMsg, barter.Address, error) {
	var msg CancelMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.Signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}

// AcceptOfferHandler pays for an offer and swaps both assets.
type AcceptOfferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ barter.Handler = AcceptOfferHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h AcceptOfferHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: acceptOfferCost}, nil
}

// Deliver swaps the deposit for the payment. Anyone paying exactly the
// requested asset can accept an offer.
func (h AcceptOfferHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, fulfiller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	offer, err := h.ctrl.Accept(db, fulfiller, msg.OfferID, *msg.Payment)
	if err != nil {
		offersRejected.WithLabelValues(msg.Path()).Inc()
		return nil, err
	}
	offersAccepted.Inc()
	barter.GetLogger(ctx).Info("offer accepted",
		"offer", msg.OfferID,
		"creator", offer.Creator,
		"fulfiller", fulfiller)
	return &barter.DeliverResult{}, nil
}

func (h AcceptOfferHandler) validate(ctx barter.Context, tx barter.Tx) (*AcceptMsg, barter.Address, error) {
	var msg AcceptMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	fulfiller, err := x.Signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, fulfiller, nil
}
