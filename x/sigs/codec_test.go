package sigs

import (
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/weavetest/prototest"
)

func TestSigsEncoding(t *testing.T) {
	priv := crypto.GenPrivKeyEd25519()
	sig, err := priv.Sign([]byte("offer"))
	if err != nil {
		t.Fatalf("cannot sign: %s", err)
	}

	cases := map[string]prototest.Message{
		"user": &UserData{
			Metadata: &barter.Metadata{Schema: 1},
			Pubkey:   priv.PublicKey(),
			Sequence: 42,
		},
		"signature": &StdSignature{
			Sequence:  42,
			Pubkey:    priv.PublicKey(),
			Signature: sig,
		},
		"bump sequence": &BumpSequenceMsg{
			Metadata:  &barter.Metadata{Schema: 1},
			Increment: 10,
		},
	}
	for testName, m := range cases {
		t.Run(testName, func(t *testing.T) {
			prototest.AssertFields(t, m)
		})
	}
}
