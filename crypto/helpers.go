package crypto

import (
	"github.com/iov-one/barter"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() barter.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// Address returns the address controlled by this key, or nil for an
// empty key.
func (p *PublicKey) Address() barter.Address {
	c := p.Condition()
	if c == nil {
		return nil
	}
	return c.Address()
}
