package store

import (
	"context"
	"time"

	"github.com/arjunsehgal/vitalis/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthStore reads time-series health samples from Postgres. All queries
// are windowed and read-only; writes happen through ingestion paths outside
// this service.
type HealthStore struct {
	db *pgxpool.Pool
}

func NewHealthStore(db *pgxpool.Pool) *HealthStore {
	return &HealthStore{db: db}
}

func (s *HealthStore) QueryGlucose(ctx context.Context, from, to time.Time) ([]domain.GlucoseReading, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, value, recorded_at FROM glucose_readings
		 WHERE recorded_at >= $1 AND recorded_at <= $2
		 ORDER BY recorded_at ASC`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []domain.GlucoseReading
	for rows.Next() {
		var r domain.GlucoseReading
		if err := rows.Scan(&r.ID, &r.Value, &r.RecordedAt); err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

func (s *HealthStore) QueryMeals(ctx context.Context, from, to time.Time) ([]domain.Meal, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, description, glycemic_load, eaten_at FROM meals
		 WHERE eaten_at >= $1 AND eaten_at <= $2
		 ORDER BY eaten_at ASC`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meals []domain.Meal
	for rows.Next() {
		var m domain.Meal
		if err := rows.Scan(&m.ID, &m.Description, &m.GlycemicLoad, &m.EatenAt); err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

func (s *HealthStore) QueryBehaviors(ctx context.Context, from, to time.Time) ([]domain.BehaviorEvent, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, kind, started_at, duration_minutes FROM behavior_events
		 WHERE started_at >= $1 AND started_at <= $2
		 ORDER BY started_at ASC`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.BehaviorEvent
	for rows.Next() {
		var e domain.BehaviorEvent
		if err := rows.Scan(&e.ID, &e.Kind, &e.StartedAt, &e.DurationMinutes); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *HealthStore) QueryEnvironment(ctx context.Context, from, to time.Time) ([]domain.EnvironmentSample, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, aqi, pollen_index, temperature_c, recorded_at FROM environment_samples
		 WHERE recorded_at >= $1 AND recorded_at <= $2
		 ORDER BY recorded_at ASC`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []domain.EnvironmentSample
	for rows.Next() {
		var e domain.EnvironmentSample
		if err := rows.Scan(&e.ID, &e.AQI, &e.PollenIndex, &e.Temperature, &e.RecordedAt); err != nil {
			return nil, err
		}
		samples = append(samples, e)
	}
	return samples, rows.Err()
}

func (s *HealthStore) QuerySleep(ctx context.Context, from, to time.Time) ([]domain.SleepSample, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, hours, recorded_at FROM sleep_samples
		 WHERE recorded_at >= $1 AND recorded_at <= $2
		 ORDER BY recorded_at ASC`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []domain.SleepSample
	for rows.Next() {
		var s domain.SleepSample
		if err := rows.Scan(&s.ID, &s.Hours, &s.RecordedAt); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
