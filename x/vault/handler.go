package vault

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r barter.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// RegisterQuery will register the holdings bucket as "/holdings"
func RegisterQuery(qr barter.QueryRouter) {
	NewBucket().Register("holdings", qr)
}

// SendHandler will handle sending assets
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ barter.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the asset from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveAsset(db, msg.Source, msg.Destination, *msg.Asset); err != nil {
		return nil, err
	}
	barter.GetLogger(ctx).Debug("asset sent",
		"asset", msg.Asset.Format(),
		"source", msg.Source,
		"destination", msg.Destination)
	return &barter.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx barter.Context, tx barter.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}
