package asset

import (
	"testing"

	"github.com/iov-one/barter/weavetest/prototest"
)

func TestAssetEncoding(t *testing.T) {
	prototest.AssertFields(t, &Asset{Ticker: "PUNK-2a4f", Nonce: 7, Quantity: 1})
}
