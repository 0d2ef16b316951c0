package offer

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

const (
	pathCreateMsg = "offer/create"
	pathCancelMsg = "offer/cancel"
	pathAcceptMsg = "offer/accept"

	createOfferCost int64 = 300
	cancelOfferCost int64 = 100
	acceptOfferCost int64 = 200
)

var _ barter.Msg = (*CreateMsg)(nil)

// Path returns the routing path for this message
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate makes sure that this is sensible
func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.Metadata.Validate(), "metadata"))
	errs = errors.Append(errs, errors.Wrap(validateDeposit(m.Deposit), "deposit"))
	errs = errors.Append(errs, errors.Wrap(validateRequested(m.Requested), "requested"))
	errs = errors.Append(errs, errors.Wrap(m.Counterparty.Validate(), "counterparty"))
	return errs
}

var _ barter.Msg = (*CancelMsg)(nil)

// Path returns the routing path for this message
func (CancelMsg) Path() string {
	return pathCancelMsg
}

// Validate makes sure that this is sensible
func (m *CancelMsg) Validate() error {
	return errors.Wrap(m.Metadata.Validate(), "metadata")
}

var _ barter.Msg = (*AcceptMsg)(nil)

// Path returns the routing path for this message
func (AcceptMsg) Path() string {
	return pathAcceptMsg
}

// Validate makes sure that this is sensible. Whether the payment matches the
// offer can only be decided against the stored state.
func (m *AcceptMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.Metadata.Validate(), "metadata"))
	if m.Payment == nil {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "payment"))
	} else {
		errs = errors.Append(errs, errors.Wrap(m.Payment.Validate(), "payment"))
	}
	return errs
}
