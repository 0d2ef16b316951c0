package offer

import (
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/weavetest/prototest"
)

func TestOfferEncoding(t *testing.T) {
	meta := &barter.Metadata{Schema: 1}
	nft := asset.NFT("X-01", 5)
	price := asset.NewAsset("Y-01", 3, 100)
	creator := weavetest.NewCondition().Address()
	counterparty := weavetest.NewCondition().Address()

	cases := map[string]prototest.Message{
		"offer": &Offer{
			Metadata:     meta,
			Creator:      creator,
			Offered:      &nft,
			Requested:    &price,
			Counterparty: counterparty,
		},
		"create": &CreateMsg{
			Metadata:     meta,
			Deposit:      &nft,
			Requested:    &price,
			Counterparty: counterparty,
		},
		"cancel": &CancelMsg{Metadata: meta, OfferID: 7},
		"accept": &AcceptMsg{Metadata: meta, OfferID: 7, Payment: &price},
	}
	for testName, m := range cases {
		t.Run(testName, func(t *testing.T) {
			prototest.AssertFields(t, m)
		})
	}
}
