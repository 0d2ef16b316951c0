/*
barterd runs the peer-to-peer swap application over a local database.

Each command opens the database stored in the home directory, executes a
single signed transaction or query and closes it again:

	barterd keygen
	barterd init --chain-id barter-local --holding "$(barterd keyaddr | head -1)=1 PUNK-2a4f#7"
	barterd offer create --deposit PUNK-2a4f#7 --requested "100 IOV" --counterparty <address>
	barterd query created <address>
	barterd metrics
*/
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/x/offer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func main() {
	if err := offer.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot register metrics: %s\n", err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "barterd",
		Short:         "Peer-to-peer non fungible asset swaps",
		Version:       barter.Version(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("home", defaultHome(), "directory to store files under, BARTER_HOME")
	root.PersistentFlags().String("chain-id", "", "chain id used by init, BARTER_CHAIN_ID")
	root.PersistentFlags().String("key", "", "private key file, defaults to <home>/"+keyFileName+", BARTER_KEY")
	root.PersistentFlags().String("log-level", "", "log filter such as main:info,*:error, BARTER_LOG_LEVEL")
	root.PersistentFlags().Bool("debug", false, "log everything and include stack traces in errors, BARTER_DEBUG")

	root.AddCommand(
		newKeygenCmd(),
		newKeyaddrCmd(),
		newInitCmd(),
		newOfferCmd(),
		newSendCmd(),
		newQueryCmd(),
		newMetricsCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "barterd version %s\n", barter.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	}
}
