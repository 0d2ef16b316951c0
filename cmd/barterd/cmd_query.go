package main

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/x/offer"
	"github.com/iov-one/barter/x/vault"
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Read the committed state",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "offer <offer id>",
			Short: "Show a single offer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseOfferID(args[0])
				if err != nil {
					return err
				}
				return queryOffers(cmd, "/offers", offer.IDKey(id))
			},
		},
		&cobra.Command{
			Use:   "created <address>",
			Short: "List offers created by the address",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				addr, err := parseRequiredAddress(args[0])
				if err != nil {
					return err
				}
				return queryOffers(cmd, "/offers/"+offer.CreatorIndex, addr)
			},
		},
		&cobra.Command{
			Use:   "wanted <address>",
			Short: "List offers made for the address",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				addr, err := parseRequiredAddress(args[0])
				if err != nil {
					return err
				}
				return queryOffers(cmd, "/offers/"+offer.WantedIndex, addr)
			},
		},
		&cobra.Command{
			Use:   "holdings <address>",
			Short: "List assets held by the address",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				addr, err := parseRequiredAddress(args[0])
				if err != nil {
					return err
				}
				return queryHoldings(cmd, addr)
			},
		},
		&cobra.Command{
			Use:   "nonce <address>",
			Short: "Show the sequence the next signature of the address must use",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				addr, err := parseRequiredAddress(args[0])
				if err != nil {
					return err
				}
				n, err := openQueryNode(cmd)
				if err != nil {
					return err
				}
				defer n.Close()
				seq, err := n.nonce(addr)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), seq)
				return nil
			},
		},
	)
	return cmd
}

func openQueryNode(cmd *cobra.Command) (*node, error) {
	conf, err := loadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	return openNode(conf)
}

func queryOffers(cmd *cobra.Command, path string, data []byte) error {
	n, err := openQueryNode(cmd)
	if err != nil {
		return err
	}
	defer n.Close()

	res, err := n.app.Query(path, data)
	if err != nil {
		return err
	}
	// the model key is the bucket prefix followed by the offer id
	prefix := len(offer.BucketName) + 1
	listings := make([]offer.Listing, 0, len(res.Models))
	for _, m := range res.Models {
		if len(m.Key) < prefix {
			return fmt.Errorf("unexpected offer key %X", m.Key)
		}
		id, err := offer.ParseID(m.Key[prefix:])
		if err != nil {
			return err
		}
		var o offer.Offer
		if err := o.Unmarshal(m.Value); err != nil {
			return err
		}
		listings = append(listings, offer.Listing{ID: id, Offer: &o})
	}
	return printJSON(cmd, listings)
}

func queryHoldings(cmd *cobra.Command, addr barter.Address) error {
	n, err := openQueryNode(cmd)
	if err != nil {
		return err
	}
	defer n.Close()

	res, err := n.app.Query("/holdings", addr)
	if err != nil {
		return err
	}
	assets := make([]string, 0)
	for _, m := range res.Models {
		var h vault.Holdings
		if err := h.Unmarshal(m.Value); err != nil {
			return err
		}
		for _, a := range h.Assets {
			assets = append(assets, a.Format())
		}
	}
	return printJSON(cmd, assets)
}

func parseRequiredAddress(raw string) (barter.Address, error) {
	addr, err := barter.ParseAddress(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %s", raw, err)
	}
	if len(addr) == 0 {
		return nil, fmt.Errorf("address is required")
	}
	return addr, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}
