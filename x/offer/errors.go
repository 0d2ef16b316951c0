package offer

import "github.com/iov-one/barter/errors"

var (
	ErrInvalidDeposit  = errors.Register(1030, "invalid deposit")
	ErrPaymentMismatch = errors.Register(1031, "payment mismatch")
)
