package reasoning

import (
	"context"
	"fmt"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

// Rule is one deterministic fallback rule: it inspects the windowed signals
// and produces an explanation when matched.
type Rule interface {
	ID() string
	Match(sig windowSignals) bool
	Explain(symptom string, sig windowSignals) domain.CausalExplanation
}

// StaticRuleEngine is the engine's cold-start path: a fixed rule list
// evaluated over the analysis window, no learned state involved. Narratives
// here are deterministic template text.
type StaticRuleEngine struct {
	rules []Rule
}

func NewStaticRuleEngine() *StaticRuleEngine {
	return &StaticRuleEngine{
		rules: []Rule{
			glucoseCrashRule{},
			heavyMealRule{},
			sleepDeficitRule{},
			environmentStressRule{},
		},
	}
}

func (e *StaticRuleEngine) Evaluate(ctx context.Context, symptom string, store domain.HealthStore, window domain.Window) ([]domain.CausalExplanation, error) {
	sig, err := gatherSignals(ctx, store, window)
	if err != nil {
		return nil, err
	}

	var results []domain.CausalExplanation
	for _, rule := range e.rules {
		if rule.Match(sig) {
			results = append(results, rule.Explain(symptom, sig))
		}
	}
	return results, nil
}

type glucoseCrashRule struct{}

func (glucoseCrashRule) ID() string { return "glucose_crash" }

func (glucoseCrashRule) Match(sig windowSignals) bool { return sig.crash != nil }

func (glucoseCrashRule) Explain(symptom string, sig windowSignals) domain.CausalExplanation {
	return domain.CausalExplanation{
		Symptom:  symptom,
		DebtType: domain.DebtMetabolic,
		CausalChain: []string{
			"glucose spike and reactive crash",
			"energy dip follows the crash",
		},
		Strength:   0.7,
		Confidence: 0.65,
		Narrative: fmt.Sprintf(
			"Your glucose dropped from %.0f to %.0f mg/dL, a reactive crash that commonly drives this kind of symptom.",
			sig.crash.PeakValue, sig.crash.LowValue),
	}
}

type heavyMealRule struct{}

func (heavyMealRule) ID() string { return "heavy_meal" }

func (heavyMealRule) Match(sig windowSignals) bool { return sig.maxGlycemicLoad > veryHighGLTrigger }

func (heavyMealRule) Explain(symptom string, sig windowSignals) domain.CausalExplanation {
	return domain.CausalExplanation{
		Symptom:  symptom,
		DebtType: domain.DebtMetabolic,
		CausalChain: []string{
			"very high glycemic load meal",
			"sustained glucose elevation",
		},
		Strength:   0.6,
		Confidence: 0.55,
		Narrative: fmt.Sprintf(
			"A meal with glycemic load %.0f is high enough to strain glucose regulation for hours.",
			sig.maxGlycemicLoad),
	}
}

type sleepDeficitRule struct{}

func (sleepDeficitRule) ID() string { return "sleep_deficit" }

func (sleepDeficitRule) Match(sig windowSignals) bool { return sig.hasSleepData && sig.sleepHours < sleepDeficitHours }

func (sleepDeficitRule) Explain(symptom string, sig windowSignals) domain.CausalExplanation {
	return domain.CausalExplanation{
		Symptom:  symptom,
		DebtType: domain.DebtSomatic,
		CausalChain: []string{
			"insufficient sleep",
			"incomplete physiological recovery",
		},
		Strength:   0.6,
		Confidence: 0.6,
		Narrative: fmt.Sprintf(
			"You slept %.1f hours, below the recovery threshold, which plausibly explains the symptom.",
			sig.sleepHours),
	}
}

type environmentStressRule struct{}

func (environmentStressRule) ID() string { return "environment_stress" }

func (environmentStressRule) Match(sig windowSignals) bool { return sig.envStress }

func (environmentStressRule) Explain(symptom string, sig windowSignals) domain.CausalExplanation {
	return domain.CausalExplanation{
		Symptom:  symptom,
		DebtType: domain.DebtSomatic,
		CausalChain: []string{
			"environmental stress exposure",
			"physiological strain",
		},
		Strength:   0.5,
		Confidence: 0.5,
		Narrative:  "Air quality, pollen or heat in your area is elevated enough to contribute to this symptom.",
	}
}
