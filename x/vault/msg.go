package vault

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

var _ barter.Msg = (*SendMsg)(nil)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "vault/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.Metadata.Validate(), "metadata"))
	errs = errors.Append(errs, errors.Wrap(m.Source.Validate(), "source"))
	errs = errors.Append(errs, errors.Wrap(m.Destination.Validate(), "destination"))
	if m.Asset == nil {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "missing asset"))
	} else if err := m.Asset.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrap(err, "asset"))
	} else if m.Asset.IsZero() {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "zero quantity"))
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Wrap(errors.ErrMsg, "memo too long"))
	}
	return errs
}
