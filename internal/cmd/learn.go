package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arjunsehgal/vitalis/internal/domain"
	"github.com/arjunsehgal/vitalis/internal/reasoning"
	"github.com/arjunsehgal/vitalis/internal/store"
)

var learnHours int

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Run one batch edge weight update",
	Long: `Scan recent meals against post-meal glucose readings and confirm or
disconfirm the learned meal-to-glucose edges in the causal graph.`,
	RunE: runLearn,
}

func init() {
	rootCmd.AddCommand(learnCmd)

	learnCmd.Flags().IntVar(&learnHours, "hours", 24, "Lookback window in hours")
}

func runLearn(cmd *cobra.Command, args []string) error {
	if learnHours < 1 || learnHours > 24*30 {
		return fmt.Errorf("hours must be between 1 and 720")
	}

	ctx := cmd.Context()

	pool, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	learner := reasoning.NewEdgeWeightLearner(store.NewGraphStore(pool), store.NewHealthStore(pool), logger)

	window := domain.WindowEnding(time.Now().UTC(), time.Duration(learnHours)*time.Hour)
	fmt.Printf("Scanning meals from %s to %s\n",
		window.From.Format(time.RFC3339), window.To.Format(time.RFC3339))

	report, err := learner.BatchUpdate(ctx, window)
	if err != nil {
		return fmt.Errorf("batch update failed: %w", err)
	}

	fmt.Printf("Meals scanned: %d (skipped %d without readings)\n", report.MealsScanned, report.MealsSkipped)
	fmt.Printf("Edges updated: %d, created: %d\n", report.EdgesUpdated, report.EdgesCreated)
	fmt.Printf("Confirmations: %d, disconfirmations: %d\n", report.Confirmations, report.Disconfirmations)

	return nil
}
