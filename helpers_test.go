package barter_test

import (
	"encoding/hex"
	"testing"

	"github.com/iov-one/barter"
)

func mustHex(t testing.TB, s string) barter.Address {
	t.Helper()
	raw, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("cannot decode %q: %s", s, err)
	}
	return barter.Address(raw)
}
