package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Code-with-pranav/esg-rag-app/internal/producer"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate synthetic ESG reports",
	Long: `Appends a synthetic emissions report for the configured company to
the ESG stream log at a fixed interval. Run alongside "serve" to watch
records flow into the index.`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sim := producer.NewESGSimulator(
		cfg.Sources.ESGPath,
		cfg.Simulator.Company,
		cfg.Simulator.Interval.Duration(),
	)

	if err := sim.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
