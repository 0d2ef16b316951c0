package barter

import (
	"testing"

	"github.com/iov-one/barter/weavetest/prototest"
)

func TestMetadataEncoding(t *testing.T) {
	prototest.AssertFields(t, &Metadata{Schema: 3})
}
