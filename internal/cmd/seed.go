package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo health data",
	Long: `Insert one afternoon of demo health data: a heavy lunch, a glucose
spike and crash, a passive scrolling session, an environment sample, and
last night's sleep. Useful for exercising the reasoning endpoint locally.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	pool, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	fmt.Println("Connected to database")

	now := time.Now().UTC()
	lunchAt := now.Add(-3 * time.Hour)

	mealID := uuid.New()
	if _, err := pool.Exec(ctx, `
		INSERT INTO meals (id, description, glycemic_load, eaten_at)
		VALUES ($1, $2, $3, $4)
	`, mealID, "White rice bowl with sweet tea", 42.0, lunchAt); err != nil {
		return fmt.Errorf("failed to seed meal: %w", err)
	}
	fmt.Printf("Seeded meal: %s (glycemic load 42)\n", mealID)

	// Glucose curve: baseline, post-meal spike, crash below baseline.
	readings := []struct {
		value float64
		at    time.Time
	}{
		{92, lunchAt.Add(-15 * time.Minute)},
		{118, lunchAt.Add(30 * time.Minute)},
		{158, lunchAt.Add(55 * time.Minute)},
		{141, lunchAt.Add(80 * time.Minute)},
		{102, lunchAt.Add(105 * time.Minute)},
		{78, lunchAt.Add(130 * time.Minute)},
	}
	for _, r := range readings {
		if err := seedGlucose(ctx, pool, r.value, r.at); err != nil {
			return err
		}
	}
	fmt.Printf("Seeded %d glucose readings (spike to 158, crash to 78)\n", len(readings))

	// Passive scrolling starting shortly after the crash.
	if _, err := pool.Exec(ctx, `
		INSERT INTO behavior_events (id, kind, started_at, duration_minutes)
		VALUES ($1, $2, $3, $4)
	`, uuid.New(), "passive_scroll", lunchAt.Add(140*time.Minute), 45.0); err != nil {
		return fmt.Errorf("failed to seed behavior event: %w", err)
	}
	fmt.Println("Seeded behavior event: 45min passive scroll")

	if _, err := pool.Exec(ctx, `
		INSERT INTO environment_samples (id, aqi, pollen_index, temperature_c, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New(), 62.0, 3.0, 27.5, now.Add(-1*time.Hour)); err != nil {
		return fmt.Errorf("failed to seed environment sample: %w", err)
	}
	fmt.Println("Seeded environment sample (AQI 62)")

	if _, err := pool.Exec(ctx, `
		INSERT INTO sleep_samples (id, hours, recorded_at)
		VALUES ($1, $2, $3)
	`, uuid.New(), 6.2, now.Add(-8*time.Hour)); err != nil {
		return fmt.Errorf("failed to seed sleep sample: %w", err)
	}
	fmt.Println("Seeded sleep sample (6.2h)")

	fmt.Println("Done. Try: curl -X POST localhost:8080/v1/reason -d '{\"symptom\":\"Why am I so tired?\"}'")

	return nil
}

func seedGlucose(ctx context.Context, pool *pgxpool.Pool, value float64, at time.Time) error {
	if _, err := pool.Exec(ctx, `
		INSERT INTO glucose_readings (id, value, recorded_at)
		VALUES ($1, $2, $3)
	`, uuid.New(), value, at); err != nil {
		return fmt.Errorf("failed to seed glucose reading: %w", err)
	}
	return nil
}
