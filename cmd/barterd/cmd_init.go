package main

import (
	"fmt"
	"path/filepath"
	"strings"

	bapp "github.com/iov-one/barter/app"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/cmd/barterd/app"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		genesisPath string
		holdings    []string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the chain state from a genesis",
		Long: `Initialize the chain state.

Without --genesis a new genesis file is written to the home directory. Each
--holding flag issues an asset to an address, for example

    --holding "A4F5...=1 PUNK-2a4f#7" --holding "B6E1...=100 IOV"

The chain id is stored in the home configuration file, so that following
commands do not need to repeat it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			var gen *bapp.Genesis
			if genesisPath != "" {
				if gen, err = bapp.LoadGenesis(genesisPath); err != nil {
					return err
				}
				if gen.ChainID == "" {
					gen.ChainID = conf.ChainID
				}
			} else {
				byAddr, err := parseHoldings(holdings)
				if err != nil {
					return err
				}
				state, err := app.GenInitOptions(byAddr)
				if err != nil {
					return err
				}
				gen = &bapp.Genesis{ChainID: conf.ChainID, AppState: state}
			}
			if gen.ChainID == "" {
				return fmt.Errorf("chain id is required")
			}

			n, err := openNode(conf)
			if err != nil {
				return err
			}
			defer n.Close()

			if err := n.app.InitChain(gen.ChainID, gen.AppState); err != nil {
				return err
			}
			if _, err := n.app.Commit(); err != nil {
				return err
			}

			if genesisPath == "" {
				if err := bapp.SaveGenesis(filepath.Join(conf.Home, genesisFileName), gen); err != nil {
					return err
				}
			}
			conf.ChainID = gen.ChainID
			if err := saveConfig(conf); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized chain %s in %s\n", gen.ChainID, conf.Home)
			return nil
		},
	}
	cmd.Flags().StringVar(&genesisPath, "genesis", "", "path to an existing genesis file")
	cmd.Flags().StringArrayVar(&holdings, "holding", nil, "issue an asset at genesis, as address=asset")
	return cmd
}

func parseHoldings(raw []string) (map[string][]asset.Asset, error) {
	byAddr := make(map[string][]asset.Asset)
	for _, h := range raw {
		chunks := strings.SplitN(h, "=", 2)
		if len(chunks) != 2 {
			return nil, fmt.Errorf("invalid holding %q, expected address=asset", h)
		}
		a, err := asset.ParseHumanFormat(chunks[1])
		if err != nil {
			return nil, fmt.Errorf("invalid holding %q: %s", h, err)
		}
		addr := strings.TrimSpace(chunks[0])
		byAddr[addr] = append(byAddr[addr], a)
	}
	return byAddr, nil
}
