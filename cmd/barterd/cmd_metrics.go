package main

import (
	"github.com/iov-one/barter/x/offer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print metrics in the Prometheus text format",
		Long: `Print metrics in the Prometheus text format.

Gauges are computed from the committed state. Counters only cover the
transactions processed by the current process, so they are meaningful when
the application is embedded in a long running process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := openQueryNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()

			if err := n.app.View(offer.ObserveActive); err != nil {
				return err
			}
			return writeMetrics(cmd, prometheus.DefaultGatherer)
		},
	}
}

func writeMetrics(cmd *cobra.Command, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(cmd.OutOrStdout(), expfmt.FmtText)
	for _, f := range families {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}
