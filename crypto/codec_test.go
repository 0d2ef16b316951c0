package crypto

import (
	"testing"

	"github.com/iov-one/barter/weavetest/prototest"
)

func TestKeyEncoding(t *testing.T) {
	priv := GenPrivKeyEd25519()
	sig, err := priv.Sign([]byte("offer"))
	if err != nil {
		t.Fatalf("cannot sign: %s", err)
	}

	cases := map[string]prototest.Message{
		"private key": priv,
		"public key":  priv.PublicKey(),
		"signature":   sig,
	}
	for testName, m := range cases {
		t.Run(testName, func(t *testing.T) {
			prototest.AssertFields(t, m)
		})
	}
}
