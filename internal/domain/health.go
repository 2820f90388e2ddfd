package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GlucoseReading is a single interstitial glucose sample in mg/dL.
type GlucoseReading struct {
	ID         uuid.UUID `json:"id"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Meal is a logged meal with its estimated glycemic load.
type Meal struct {
	ID           uuid.UUID `json:"id"`
	Description  string    `json:"description"`
	GlycemicLoad float64   `json:"glycemic_load"`
	EatenAt      time.Time `json:"eaten_at"`
}

// NodeID returns the meal's causal-graph node identifier.
func (m Meal) NodeID() string {
	return "meal_" + m.ID.String()
}

// BehaviorKind classifies a logged digital-behavior event.
type BehaviorKind string

const (
	BehaviorPassiveScroll  BehaviorKind = "passive_scroll"
	BehaviorPassiveVideo   BehaviorKind = "passive_video"
	BehaviorActiveCreation BehaviorKind = "active_creation"
	BehaviorCommunication  BehaviorKind = "communication"
)

// Passive reports whether the kind counts toward passive-consumption minutes.
func (k BehaviorKind) Passive() bool {
	return k == BehaviorPassiveScroll || k == BehaviorPassiveVideo
}

// BehaviorEvent is a contiguous stretch of device usage of one kind.
type BehaviorEvent struct {
	ID              uuid.UUID    `json:"id"`
	Kind            BehaviorKind `json:"kind"`
	StartedAt       time.Time    `json:"started_at"`
	DurationMinutes float64      `json:"duration_minutes"`
}

// EnvironmentSample is an ambient-conditions reading for the user's location.
type EnvironmentSample struct {
	ID          uuid.UUID `json:"id"`
	AQI         float64   `json:"aqi"`
	PollenIndex float64   `json:"pollen_index"`
	Temperature float64   `json:"temperature_c"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// SleepSample is one night's sleep duration in hours.
type SleepSample struct {
	ID         uuid.UUID `json:"id"`
	Hours      float64   `json:"hours"`
	RecordedAt time.Time `json:"recorded_at"`
}

// HealthStore exposes windowed queries over the underlying health-data
// store. The store's consistency model is its own concern; query failures
// propagate to callers unretried.
type HealthStore interface {
	QueryGlucose(ctx context.Context, from, to time.Time) ([]GlucoseReading, error)
	QueryMeals(ctx context.Context, from, to time.Time) ([]Meal, error)
	QueryBehaviors(ctx context.Context, from, to time.Time) ([]BehaviorEvent, error)
	QueryEnvironment(ctx context.Context, from, to time.Time) ([]EnvironmentSample, error)
	QuerySleep(ctx context.Context, from, to time.Time) ([]SleepSample, error)
}

// GlucoseCrash marks a detected reactive-low state: a rapid drop from a
// recent peak to a low absolute value.
type GlucoseCrash struct {
	PeakValue  float64   `json:"peak_value"`
	LowValue   float64   `json:"low_value"`
	DetectedAt time.Time `json:"detected_at"`
}

const (
	// A drop of at least crashDropMgdl from a peak to below crashFloorMgdl
	// within crashSpan counts as a crash.
	crashDropMgdl  = 30.0
	crashFloorMgdl = 85.0
	crashSpan      = 90 * time.Minute
)

// DetectGlucoseCrash scans readings (assumed chronological) for a
// reactive-low pattern and returns the first crash found, or nil.
func DetectGlucoseCrash(readings []GlucoseReading) *GlucoseCrash {
	for i, peak := range readings {
		for _, r := range readings[i+1:] {
			if r.RecordedAt.Sub(peak.RecordedAt) > crashSpan {
				break
			}
			if r.Value < crashFloorMgdl && peak.Value-r.Value >= crashDropMgdl {
				return &GlucoseCrash{
					PeakValue:  peak.Value,
					LowValue:   r.Value,
					DetectedAt: r.RecordedAt,
				}
			}
		}
	}
	return nil
}
