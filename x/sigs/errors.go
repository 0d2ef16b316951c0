package sigs

import (
	"github.com/iov-one/barter/errors"
)

// ErrInvalidSequence is returned when a signature sequence is out of order
// or negative. x/sigs reserves 20 ~ 29.
var ErrInvalidSequence = errors.Register(20, "invalid sequence number")
