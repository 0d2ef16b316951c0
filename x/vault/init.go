package vault

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/errors"
)

const optKey = "vault"

// GenesisAccount is used to parse the json from genesis file.
// Address uses barter.Address, so it is hex encoded rather than base64.
type GenesisAccount struct {
	Address barter.Address `json:"address"`
	Assets  []asset.Asset  `json:"assets"`
}

// Initializer fulfils the barter.Initializer interface to load holdings
// from the genesis file
type Initializer struct{}

var _ barter.Initializer = Initializer{}

// FromGenesis will parse initial holdings from genesis
// and issue them
func (Initializer) FromGenesis(opts barter.Options, kv barter.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		for _, a := range acct.Assets {
			if err := ctrl.Issue(kv, acct.Address, a); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
	}
	return nil
}
