package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/arjunsehgal/vitalis/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "vitalisctl",
	Short: "Maintenance CLI for the vitalis causal reasoning engine",
	Long: `vitalisctl runs maintenance operations against a vitalis deployment:
batch edge weight learning, demo data seeding, and version inspection.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// connectDB loads config and opens a pgx pool against DATABASE_URL.
func connectDB(ctx context.Context) (*pgxpool.Pool, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbURL := config.DatabaseURL()
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
