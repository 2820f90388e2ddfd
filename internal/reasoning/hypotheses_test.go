package reasoning

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

func gather(t *testing.T, health *mockHealthStore) windowSignals {
	t.Helper()
	sig, err := gatherSignals(context.Background(), health, domain.WindowEnding(time.Now().UTC(), 6*time.Hour))
	if err != nil {
		t.Fatalf("expected no error gathering signals, got %v", err)
	}
	return sig
}

func findHypothesis(hypotheses []*domain.Hypothesis, debt domain.DebtType) *domain.Hypothesis {
	for _, h := range hypotheses {
		if h.DebtType == debt {
			return h
		}
	}
	return nil
}

func TestGatherSignals_WrapsStoreFailures(t *testing.T) {
	health := &mockHealthStore{err: errors.New("connection refused")}

	_, err := gatherSignals(context.Background(), health, domain.WindowEnding(time.Now().UTC(), 6*time.Hour))
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestGenerateHypotheses_CrashDrivesMetabolic(t *testing.T) {
	now := time.Now().UTC()
	mealAt := now.Add(-3 * time.Hour)
	health := &mockHealthStore{
		meals: []domain.Meal{{ID: uuid.New(), GlycemicLoad: 42, EatenAt: mealAt}},
		glucose: []domain.GlucoseReading{
			{ID: uuid.New(), Value: 158, RecordedAt: mealAt.Add(55 * time.Minute)},
			{ID: uuid.New(), Value: 78, RecordedAt: mealAt.Add(130 * time.Minute)},
		},
		sleep: []domain.SleepSample{{ID: uuid.New(), Hours: 8, RecordedAt: now.Add(-5 * time.Hour)}},
	}

	hypotheses := generateHypotheses("Why am I so tired?", gather(t, health))

	metabolic := findHypothesis(hypotheses, domain.DebtMetabolic)
	if metabolic == nil {
		t.Fatal("expected a metabolic hypothesis")
	}
	if metabolic.Confidence != 0.76 {
		t.Fatalf("expected crash confidence 0.76, got %f", metabolic.Confidence)
	}
	if hypotheses[0] != metabolic {
		t.Fatalf("expected metabolic ranked first, got %s", hypotheses[0].DebtType)
	}

	// No screen time, adequate sleep: both become placeholders.
	digital := findHypothesis(hypotheses, domain.DebtDigital)
	somatic := findHypothesis(hypotheses, domain.DebtSomatic)
	if digital == nil || digital.Confidence != 0.15 {
		t.Fatalf("expected digital placeholder at 0.15, got %+v", digital)
	}
	if somatic == nil || somatic.Confidence != 0.15 {
		t.Fatalf("expected somatic placeholder at 0.15, got %+v", somatic)
	}
}

func TestGenerateHypotheses_GlycemicLoadTiers(t *testing.T) {
	tests := []struct {
		name string
		load float64
		want float64
	}{
		{"very high load", 40, 0.68},
		{"high load", 30, 0.58},
		{"low load", 10, 0.40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			health := &mockHealthStore{
				meals: []domain.Meal{{ID: uuid.New(), GlycemicLoad: tt.load, EatenAt: time.Now().Add(-2 * time.Hour)}},
				sleep: []domain.SleepSample{{ID: uuid.New(), Hours: 8, RecordedAt: time.Now().Add(-5 * time.Hour)}},
			}

			hypotheses := generateHypotheses("tired", gather(t, health))
			metabolic := findHypothesis(hypotheses, domain.DebtMetabolic)
			if metabolic == nil {
				t.Fatal("expected a metabolic hypothesis")
			}
			if metabolic.Confidence != tt.want {
				t.Fatalf("expected confidence %f for load %f, got %f", tt.want, tt.load, metabolic.Confidence)
			}
		})
	}
}

func TestGenerateHypotheses_DigitalConfidenceFormula(t *testing.T) {
	now := time.Now().UTC()
	health := &mockHealthStore{
		behaviors: []domain.BehaviorEvent{
			{ID: uuid.New(), Kind: domain.BehaviorPassiveScroll, StartedAt: now.Add(-2 * time.Hour), DurationMinutes: 50},
		},
		sleep: []domain.SleepSample{{ID: uuid.New(), Hours: 8, RecordedAt: now.Add(-5 * time.Hour)}},
	}

	hypotheses := generateHypotheses("foggy", gather(t, health))
	digital := findHypothesis(hypotheses, domain.DebtDigital)
	if digital == nil {
		t.Fatal("expected a digital hypothesis")
	}
	want := 0.45 + 50.0/200.0
	if math.Abs(digital.Confidence-want) > 1e-9 {
		t.Fatalf("expected digital confidence %f, got %f", want, digital.Confidence)
	}
}

func TestGenerateHypotheses_DigitalConfidenceCapped(t *testing.T) {
	now := time.Now().UTC()
	health := &mockHealthStore{
		behaviors: []domain.BehaviorEvent{
			{ID: uuid.New(), Kind: domain.BehaviorPassiveVideo, StartedAt: now.Add(-4 * time.Hour), DurationMinutes: 300},
		},
		sleep: []domain.SleepSample{{ID: uuid.New(), Hours: 8, RecordedAt: now.Add(-5 * time.Hour)}},
	}

	hypotheses := generateHypotheses("foggy", gather(t, health))
	digital := findHypothesis(hypotheses, domain.DebtDigital)
	if digital.Confidence != 0.80 {
		t.Fatalf("expected digital confidence capped at 0.80, got %f", digital.Confidence)
	}
}

func TestGenerateHypotheses_SomaticFactors(t *testing.T) {
	now := time.Now().UTC()

	// Sleep deficit only.
	health := &mockHealthStore{
		sleep: []domain.SleepSample{{ID: uuid.New(), Hours: 5.5, RecordedAt: now.Add(-5 * time.Hour)}},
	}
	somatic := findHypothesis(generateHypotheses("achy", gather(t, health)), domain.DebtSomatic)
	if somatic.Confidence != 0.55 {
		t.Fatalf("expected one-factor somatic confidence 0.55, got %f", somatic.Confidence)
	}

	// Sleep deficit plus environmental stress.
	health = &mockHealthStore{
		sleep: []domain.SleepSample{{ID: uuid.New(), Hours: 5.5, RecordedAt: now.Add(-5 * time.Hour)}},
		env:   []domain.EnvironmentSample{{ID: uuid.New(), AQI: 130, RecordedAt: now.Add(-1 * time.Hour)}},
	}
	somatic = findHypothesis(generateHypotheses("achy", gather(t, health)), domain.DebtSomatic)
	if somatic.Confidence != 0.70 {
		t.Fatalf("expected two-factor somatic confidence 0.70, got %f", somatic.Confidence)
	}
}

func TestGenerateHypotheses_MissingSleepDataCountsAsDeficit(t *testing.T) {
	health := &mockHealthStore{}

	somatic := findHypothesis(generateHypotheses("tired", gather(t, health)), domain.DebtSomatic)
	if somatic == nil {
		t.Fatal("expected a somatic hypothesis when sleep data is absent")
	}
	if somatic.Confidence != 0.55 {
		t.Fatalf("expected somatic confidence 0.55, got %f", somatic.Confidence)
	}
}

func TestApplySkinOverride_DarkCirclesRouteSomatic(t *testing.T) {
	now := time.Now().UTC()
	health := &mockHealthStore{
		meals: []domain.Meal{{ID: uuid.New(), GlycemicLoad: 30, EatenAt: now.Add(-2 * time.Hour)}},
		sleep: []domain.SleepSample{{ID: uuid.New(), Hours: 5, RecordedAt: now.Add(-5 * time.Hour)}},
	}

	hypotheses := generateHypotheses("Why do I have dark circles today?", gather(t, health))
	somatic := findHypothesis(hypotheses, domain.DebtSomatic)
	if somatic.Confidence != 0.78 {
		t.Fatalf("expected skin override 0.78 with heavy meal and sleep deficit, got %f", somatic.Confidence)
	}
}

func TestApplySkinOverride_AcneRoutesMetabolic(t *testing.T) {
	now := time.Now().UTC()
	health := &mockHealthStore{
		meals: []domain.Meal{{ID: uuid.New(), GlycemicLoad: 30, EatenAt: now.Add(-2 * time.Hour)}},
		sleep: []domain.SleepSample{{ID: uuid.New(), Hours: 8, RecordedAt: now.Add(-5 * time.Hour)}},
	}

	hypotheses := generateHypotheses("sudden acne breakout", gather(t, health))
	metabolic := findHypothesis(hypotheses, domain.DebtMetabolic)
	if metabolic.Confidence != 0.72 {
		t.Fatalf("expected skin override 0.72 with heavy meal only, got %f", metabolic.Confidence)
	}
}

func TestApplySkinOverride_NeverLowersConfidence(t *testing.T) {
	now := time.Now().UTC()
	mealAt := now.Add(-3 * time.Hour)
	// Crash puts metabolic at 0.76, above every skin override value.
	health := &mockHealthStore{
		meals: []domain.Meal{{ID: uuid.New(), GlycemicLoad: 42, EatenAt: mealAt}},
		glucose: []domain.GlucoseReading{
			{ID: uuid.New(), Value: 158, RecordedAt: mealAt.Add(55 * time.Minute)},
			{ID: uuid.New(), Value: 78, RecordedAt: mealAt.Add(130 * time.Minute)},
		},
		sleep: []domain.SleepSample{{ID: uuid.New(), Hours: 8, RecordedAt: now.Add(-5 * time.Hour)}},
	}

	hypotheses := generateHypotheses("oily skin today", gather(t, health))
	metabolic := findHypothesis(hypotheses, domain.DebtMetabolic)
	if metabolic.Confidence != 0.76 {
		t.Fatalf("expected crash confidence 0.76 to survive the override, got %f", metabolic.Confidence)
	}
}

func TestGenerateHypotheses_AlwaysCoversAllCategories(t *testing.T) {
	hypotheses := generateHypotheses("anything", windowSignals{hasSleepData: true, sleepHours: 8})

	if len(hypotheses) != len(domain.AllDebtTypes) {
		t.Fatalf("expected %d hypotheses, got %d", len(domain.AllDebtTypes), len(hypotheses))
	}
	for _, debt := range domain.AllDebtTypes {
		if findHypothesis(hypotheses, debt) == nil {
			t.Fatalf("expected a hypothesis for %s", debt)
		}
	}
}
