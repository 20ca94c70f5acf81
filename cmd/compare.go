package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/complexity-sim/complexity-sim/sim"
	"github.com/complexity-sim/complexity-sim/sim/report"
)

// compareCmd analyzes the same range under every growth model side by side
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Analyze the same range under n, nlogn and n2 concurrently",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(compareOpts.logLevel)

		code, settings, err := resolveRun(cmd, &compareOpts)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if !report.IsValidFormat(compareOpts.format) {
			logrus.Fatalf("Invalid format %q; valid: table, json, yaml, csv", compareOpts.format)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var cmp *sim.Comparison
		if compareOpts.server != "" {
			cmp, err = NewAPIClient(compareOpts.server).Compare(ctx, code, settings)
		} else {
			cmp, err = newAnalyzer(&compareOpts).Compare(ctx, code, settings)
		}
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		if err := report.WriteComparison(os.Stdout, report.Format(compareOpts.format), cmp); err != nil {
			logrus.Fatalf("Writing report: %v", err)
		}
	},
}
