/*
Package asset defines the value type used to describe anything that can be
held, deposited or requested: fungible tokens as well as non fungible
instances of a collection.
*/
package asset

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/iov-one/barter/errors"
)

// IsTicker is the RegExp to ensure valid asset identifiers, such as
// "IOV" or "PUNK-2a4f".
var IsTicker = regexp.MustCompile(`^[A-Za-z0-9]{1,20}(-[A-Za-z0-9]{1,10})?$`).MatchString

// ErrInvalidAsset is returned when an asset value is malformed.
var ErrInvalidAsset = errors.Register(1010, "invalid asset")

// NewAsset returns an asset value.
func NewAsset(ticker string, nonce, quantity uint64) Asset {
	return Asset{
		Ticker:   ticker,
		Nonce:    nonce,
		Quantity: quantity,
	}
}

// NFT returns a single instance of a non fungible asset.
func NFT(ticker string, nonce uint64) Asset {
	return NewAsset(ticker, nonce, 1)
}

// Validate checks the ticker format. Zero quantity is allowed, so that
// a requested amount can be validated by the caller.
func (a *Asset) Validate() error {
	if a == nil {
		return errors.Wrap(ErrInvalidAsset, "missing asset")
	}
	if !IsTicker(a.Ticker) {
		return errors.Wrapf(ErrInvalidAsset, "ticker %q", a.Ticker)
	}
	return nil
}

// IsNFT returns true if this value is exactly one instance of a non
// fungible asset.
func (a *Asset) IsNFT() bool {
	return a != nil && a.Nonce > 0 && a.Quantity == 1
}

// IsZero returns true if the quantity is zero.
func (a *Asset) IsZero() bool {
	return a == nil || a.Quantity == 0
}

// SameType returns true if both values refer to the same ticker and
// nonce, ignoring quantity.
func (a *Asset) SameType(o *Asset) bool {
	if a == nil || o == nil {
		return a == o
	}
	return a.Ticker == o.Ticker && a.Nonce == o.Nonce
}

// Equals returns true if ticker, nonce and quantity all match.
func (a *Asset) Equals(o *Asset) bool {
	return a.SameType(o) && (a == nil || a.Quantity == o.Quantity)
}

// Add combines two values of the same type.
func (a Asset) Add(o Asset) (Asset, error) {
	if !a.SameType(&o) {
		return Asset{}, errors.Wrapf(ErrInvalidAsset, "adding %s to %s", o.ID(), a.ID())
	}
	sum := a.Quantity + o.Quantity
	if sum < a.Quantity {
		return Asset{}, errors.Wrap(errors.ErrOverflow, "asset quantity")
	}
	a.Quantity = sum
	return a, nil
}

// Subtract takes o away from a. Subtracting more than is present returns
// errors.ErrAmount.
func (a Asset) Subtract(o Asset) (Asset, error) {
	if !a.SameType(&o) {
		return Asset{}, errors.Wrapf(ErrInvalidAsset, "subtracting %s from %s", o.ID(), a.ID())
	}
	if o.Quantity > a.Quantity {
		return Asset{}, errors.Wrapf(errors.ErrAmount, "have %d, need %d", a.Quantity, o.Quantity)
	}
	a.Quantity -= o.Quantity
	return a, nil
}

// Compare orders assets by ticker and then nonce. It returns -1, 0 or 1.
func (a Asset) Compare(o Asset) int {
	switch {
	case a.Ticker < o.Ticker:
		return -1
	case a.Ticker > o.Ticker:
		return 1
	case a.Nonce < o.Nonce:
		return -1
	case a.Nonce > o.Nonce:
		return 1
	}
	return 0
}

// ID returns the ticker, followed by the nonce for non fungible assets.
func (a Asset) ID() string {
	if a.Nonce == 0 {
		return a.Ticker
	}
	return fmt.Sprintf("%s#%d", a.Ticker, a.Nonce)
}

// Format renders the asset as "<quantity> <id>", for example "1 PUNK-2a4f#7".
func (a Asset) Format() string {
	return fmt.Sprintf("%d %s", a.Quantity, a.ID())
}

var humanFormatRx = regexp.MustCompile(`^\s*(\d+)\s+([A-Za-z0-9\-]+)(?:#(\d+))?\s*$`)

// ParseHumanFormat parses the representation produced by Format. The
// quantity is optional and defaults to one, so "PUNK-2a4f#7" is a valid
// non fungible asset.
func ParseHumanFormat(h string) (Asset, error) {
	if !humanFormatRx.MatchString(h) {
		h = "1 " + h
	}
	m := humanFormatRx.FindStringSubmatch(h)
	if m == nil {
		return Asset{}, errors.Wrapf(errors.ErrInput, "invalid asset format %q", h)
	}
	quantity, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Asset{}, errors.Wrapf(errors.ErrInput, "quantity: %s", err)
	}
	var nonce uint64
	if m[3] != "" {
		if nonce, err = strconv.ParseUint(m[3], 10, 64); err != nil {
			return Asset{}, errors.Wrapf(errors.ErrInput, "nonce: %s", err)
		}
	}
	a := NewAsset(m[2], nonce, quantity)
	if err := a.Validate(); err != nil {
		return Asset{}, err
	}
	return a, nil
}
