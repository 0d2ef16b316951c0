package weavetest

import (
	"encoding/hex"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/crypto"
)

// NewKey returns a new random ed25519 private key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() barter.Condition {
	return NewKey().PublicKey().Condition()
}

// DecodeAddr returns the address encoded as hex, failing the test if it is
// not a valid address.
func DecodeAddr(t testing.TB, encoded string) barter.Address {
	t.Helper()
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		t.Fatalf("cannot decode %q: %s", encoded, err)
	}
	addr := barter.Address(raw)
	if err := addr.Validate(); err != nil {
		t.Fatalf("%q is not an address: %s", encoded, err)
	}
	return addr
}
