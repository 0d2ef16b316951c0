package main

import (
	"fmt"
	"strconv"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/x/offer"
	"github.com/iov-one/barter/x/vault"
	"github.com/spf13/cobra"
)

func newOfferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offer",
		Short: "Create, cancel and accept swap offers",
	}
	cmd.AddCommand(
		newOfferCreateCmd(),
		newOfferCancelCmd(),
		newOfferAcceptCmd(),
	)
	return cmd
}

func newOfferCreateCmd() *cobra.Command {
	var deposit, requested, counterparty string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Deposit a non fungible asset and offer it in exchange for another asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dep, err := asset.ParseHumanFormat(deposit)
			if err != nil {
				return fmt.Errorf("deposit: %s", err)
			}
			req, err := asset.ParseHumanFormat(requested)
			if err != nil {
				return fmt.Errorf("requested: %s", err)
			}
			cp, err := barter.ParseAddress(counterparty)
			if err != nil {
				return fmt.Errorf("counterparty: %s", err)
			}
			msg := &offer.CreateMsg{
				Metadata:     &barter.Metadata{Schema: 1},
				Deposit:      &dep,
				Requested:    &req,
				Counterparty: cp,
			}
			res, err := submit(cmd, msg)
			if err != nil {
				return err
			}
			id, err := offer.ParseID(res.Data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "offer %d created\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&deposit, "deposit", "", "deposited asset, for example PUNK-2a4f#7")
	cmd.Flags().StringVar(&requested, "requested", "", "requested asset, for example \"100 IOV\"")
	cmd.Flags().StringVar(&counterparty, "counterparty", "", "address the offer is made for")
	return cmd
}

func newOfferCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <offer id>",
		Short: "Withdraw an offer and get the deposit back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOfferID(args[0])
			if err != nil {
				return err
			}
			msg := &offer.CancelMsg{
				Metadata: &barter.Metadata{Schema: 1},
				OfferID:  id,
			}
			if _, err := submit(cmd, msg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "offer %d cancelled\n", id)
			return nil
		},
	}
}

func newOfferAcceptCmd() *cobra.Command {
	var payment string
	cmd := &cobra.Command{
		Use:   "accept <offer id>",
		Short: "Pay the requested asset and receive the deposit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOfferID(args[0])
			if err != nil {
				return err
			}
			pay, err := asset.ParseHumanFormat(payment)
			if err != nil {
				return fmt.Errorf("payment: %s", err)
			}
			msg := &offer.AcceptMsg{
				Metadata: &barter.Metadata{Schema: 1},
				OfferID:  id,
				Payment:  &pay,
			}
			if _, err := submit(cmd, msg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "offer %d accepted\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&payment, "payment", "", "paid asset, must equal the requested one")
	return cmd
}

func newSendCmd() *cobra.Command {
	var to, amount, memo string
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Transfer an asset to another address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			key, err := loadKey(conf.Key)
			if err != nil {
				return err
			}
			dst, err := barter.ParseAddress(to)
			if err != nil {
				return fmt.Errorf("destination: %s", err)
			}
			a, err := asset.ParseHumanFormat(amount)
			if err != nil {
				return fmt.Errorf("asset: %s", err)
			}
			msg := &vault.SendMsg{
				Metadata:    &barter.Metadata{Schema: 1},
				Source:      key.PublicKey().Address(),
				Destination: dst,
				Asset:       &a,
				Memo:        memo,
			}
			if _, err := submit(cmd, msg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s to %s\n", a.Format(), dst)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "destination address")
	cmd.Flags().StringVar(&amount, "asset", "", "transferred asset, for example \"10 IOV\"")
	cmd.Flags().StringVar(&memo, "memo", "", "optional note")
	return cmd
}

// submit signs the message with the configured key and executes it.
func submit(cmd *cobra.Command, msg barter.Msg) (*barter.DeliverResult, error) {
	conf, err := loadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	key, err := loadKey(conf.Key)
	if err != nil {
		return nil, err
	}
	n, err := openNode(conf)
	if err != nil {
		return nil, err
	}
	defer n.Close()
	return n.submit(key, msg)
}

func parseOfferID(raw string) (uint32, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid offer id %q", raw)
	}
	return uint32(id), nil
}
