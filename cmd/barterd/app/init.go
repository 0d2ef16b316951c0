package app

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/vault"
)

// GenInitOptions produces the genesis application state. Each address
// is issued the listed assets by the vault initializer.
func GenInitOptions(holdings map[string][]asset.Asset) (json.RawMessage, error) {
	accounts := make([]vault.GenesisAccount, 0, len(holdings))
	for enc, assets := range holdings {
		addr, err := barter.ParseAddress(enc)
		if err != nil {
			return nil, errors.Wrapf(err, "address %q", enc)
		}
		if len(addr) == 0 {
			return nil, errors.Wrap(errors.ErrEmpty, "address")
		}
		accounts = append(accounts, vault.GenesisAccount{Address: addr, Assets: assets})
	}
	// map iteration is random, the genesis file is not
	sort.Slice(accounts, func(i, j int) bool {
		return bytes.Compare(accounts[i].Address, accounts[j].Address) < 0
	})

	opts := map[string]interface{}{
		"vault": accounts,
	}
	raw, err := json.MarshalIndent(opts, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}
