package reasoning

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

// Hypothesis generation is deterministic over the windowed signals, not
// learned. That keeps cold-start behavior predictable and testable; the
// thresholds below are part of the contract.
const (
	metabolicCrashConfidence     = 0.76
	metabolicHeavyMealConfidence = 0.68
	metabolicMealConfidence      = 0.58
	metabolicWeakConfidence      = 0.40

	digitalBaseConfidence = 0.45
	digitalMinutesDivisor = 200.0
	digitalMaxConfidence  = 0.80

	somaticBothFactorsConfidence = 0.70
	somaticOneFactorConfidence   = 0.55

	skinBothFactorsConfidence = 0.78
	skinMealOnlyConfidence    = 0.72
	skinBaseConfidence        = 0.62

	placeholderConfidence = 0.15

	highGLTrigger      = 25.0
	veryHighGLTrigger  = 35.0
	sleepDeficitHours  = 7.0
	stressAQI          = 100.0
	stressPollenIndex  = 8.0
	stressTemperatureC = 33.0
)

// windowSignals is everything the thought stage reads from one analysis
// window.
type windowSignals struct {
	crash           *domain.GlucoseCrash
	meals           []domain.Meal
	maxGlycemicLoad float64
	passiveMinutes  float64
	sleepHours      float64
	hasSleepData    bool
	envStress       bool
}

func (s windowSignals) sleepDeficit() bool {
	return !s.hasSleepData || s.sleepHours < sleepDeficitHours
}

// gatherSignals runs the windowed store queries the thought stage needs.
// Any query failure propagates as ErrDataUnavailable.
func gatherSignals(ctx context.Context, store domain.HealthStore, window domain.Window) (windowSignals, error) {
	var sig windowSignals

	readings, err := store.QueryGlucose(ctx, window.From, window.To)
	if err != nil {
		return sig, dataUnavailable("query glucose", err)
	}
	sig.crash = domain.DetectGlucoseCrash(readings)

	sig.meals, err = store.QueryMeals(ctx, window.From, window.To)
	if err != nil {
		return sig, dataUnavailable("query meals", err)
	}
	for _, m := range sig.meals {
		if m.GlycemicLoad > sig.maxGlycemicLoad {
			sig.maxGlycemicLoad = m.GlycemicLoad
		}
	}

	behaviors, err := store.QueryBehaviors(ctx, window.From, window.To)
	if err != nil {
		return sig, dataUnavailable("query behaviors", err)
	}
	for _, b := range behaviors {
		if b.Kind.Passive() {
			sig.passiveMinutes += b.DurationMinutes
		}
	}

	sleep, err := store.QuerySleep(ctx, window.From, window.To)
	if err != nil {
		return sig, dataUnavailable("query sleep", err)
	}
	sig.hasSleepData = len(sleep) > 0
	for _, s := range sleep {
		sig.sleepHours += s.Hours
	}

	env, err := store.QueryEnvironment(ctx, window.From, window.To)
	if err != nil {
		return sig, dataUnavailable("query environment", err)
	}
	for _, e := range env {
		if e.AQI > stressAQI || e.PollenIndex >= stressPollenIndex || e.Temperature > stressTemperatureC {
			sig.envStress = true
			break
		}
	}

	return sig, nil
}

// generateHypotheses is the thought stage: one hypothesis per debt type
// from the raw windowed signals, with a placeholder for every category not
// otherwise represented.
func generateHypotheses(symptom string, sig windowSignals) []*domain.Hypothesis {
	var hypotheses []*domain.Hypothesis

	if h := metabolicHypothesis(sig); h != nil {
		hypotheses = append(hypotheses, h)
	}
	if h := digitalHypothesis(sig); h != nil {
		hypotheses = append(hypotheses, h)
	}
	if h := somaticHypothesis(sig); h != nil {
		hypotheses = append(hypotheses, h)
	}

	hypotheses = applySkinOverride(symptom, sig, hypotheses)

	for _, debt := range domain.AllDebtTypes {
		if !hasDebtType(hypotheses, debt) {
			hypotheses = append(hypotheses, placeholderHypothesis(debt))
		}
	}

	domain.SortHypotheses(hypotheses)
	return hypotheses
}

func metabolicHypothesis(sig windowSignals) *domain.Hypothesis {
	switch {
	case sig.crash != nil:
		return &domain.Hypothesis{
			DebtType:    domain.DebtMetabolic,
			Description: "reactive glucose crash after a high-glycemic meal",
			Confidence:  metabolicCrashConfidence,
			CausalChain: []string{
				"high-glycemic meal consumed",
				"glucose spike followed by reactive crash",
				"energy dip drives the symptom",
			},
			PriorProbability: metabolicCrashConfidence,
		}
	case sig.maxGlycemicLoad > highGLTrigger:
		conf := metabolicMealConfidence
		if sig.maxGlycemicLoad > veryHighGLTrigger {
			conf = metabolicHeavyMealConfidence
		}
		return &domain.Hypothesis{
			DebtType:    domain.DebtMetabolic,
			Description: fmt.Sprintf("heavy meal (glycemic load %.0f) straining glucose regulation", sig.maxGlycemicLoad),
			Confidence:  conf,
			CausalChain: []string{
				"heavy meal consumed",
				"sustained glucose elevation",
				"metabolic load produces the symptom",
			},
			PriorProbability: conf,
		}
	case len(sig.meals) > 0:
		return &domain.Hypothesis{
			DebtType:    domain.DebtMetabolic,
			Description: "meals logged without strong metabolic signal",
			Confidence:  metabolicWeakConfidence,
			CausalChain: []string{
				"meals in window",
				"possible mild metabolic contribution",
			},
			PriorProbability: metabolicWeakConfidence,
		}
	}
	return nil
}

func digitalHypothesis(sig windowSignals) *domain.Hypothesis {
	if sig.passiveMinutes <= 0 {
		return nil
	}
	conf := math.Min(digitalBaseConfidence+sig.passiveMinutes/digitalMinutesDivisor, digitalMaxConfidence)
	return &domain.Hypothesis{
		DebtType:    domain.DebtDigital,
		Description: fmt.Sprintf("%.0f minutes of passive consumption", sig.passiveMinutes),
		Confidence:  conf,
		CausalChain: []string{
			"extended passive scrolling",
			"attention fatigue accumulates",
			"cognitive drain produces the symptom",
		},
		PriorProbability: conf,
	}
}

func somaticHypothesis(sig windowSignals) *domain.Hypothesis {
	deficit := sig.sleepDeficit()
	if !deficit && !sig.envStress {
		return nil
	}
	conf := somaticOneFactorConfidence
	if deficit && sig.envStress {
		conf = somaticBothFactorsConfidence
	}
	chain := []string{}
	if deficit {
		chain = append(chain, "insufficient sleep recovery")
	}
	if sig.envStress {
		chain = append(chain, "environmental stress (air quality, pollen or heat)")
	}
	chain = append(chain, "physiological strain produces the symptom")
	return &domain.Hypothesis{
		DebtType:         domain.DebtSomatic,
		Description:      "somatic load from sleep deficit or environment",
		Confidence:       conf,
		CausalChain:      chain,
		PriorProbability: conf,
	}
}

// Skin keyword routing. Substring matching against free text is a
// heuristic policy, not a classification guarantee; the keyword sets below
// are the whole contract.
var (
	somaticSkinKeywords   = []string{"dark circle", "dark circles", "under-eye", "eye bag", "puffy eyes"}
	metabolicSkinKeywords = []string{"acne", "pimple", "breakout", "oily skin", "skin looks oily"}
)

// applySkinOverride synthesizes or replaces the relevant hypothesis with a
// skin-specific causal chain when the symptom text matches. The override
// only applies when it would raise that category's confidence.
func applySkinOverride(symptom string, sig windowSignals, hypotheses []*domain.Hypothesis) []*domain.Hypothesis {
	lower := strings.ToLower(symptom)

	var debt domain.DebtType
	switch {
	case matchesAny(lower, somaticSkinKeywords):
		debt = domain.DebtSomatic
	case matchesAny(lower, metabolicSkinKeywords):
		debt = domain.DebtMetabolic
	default:
		return hypotheses
	}

	heavyMeal := sig.maxGlycemicLoad > highGLTrigger
	conf := skinBaseConfidence
	switch {
	case heavyMeal && sig.sleepDeficit():
		conf = skinBothFactorsConfidence
	case heavyMeal:
		conf = skinMealOnlyConfidence
	}

	override := &domain.Hypothesis{
		DebtType:    debt,
		Description: "skin-visible response to glycemic load and recovery deficit",
		Confidence:  conf,
		CausalChain: []string{
			"high-glycemic intake and incomplete recovery",
			"inflammatory and circulatory response",
			"visible skin change",
		},
		PriorProbability: conf,
	}

	for i, h := range hypotheses {
		if h.DebtType == debt {
			if conf > h.Confidence {
				hypotheses[i] = override
			}
			return hypotheses
		}
	}
	return append(hypotheses, override)
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func placeholderHypothesis(debt domain.DebtType) *domain.Hypothesis {
	return &domain.Hypothesis{
		DebtType:         debt,
		Description:      fmt.Sprintf("no strong %s signal in window", debt),
		Confidence:       placeholderConfidence,
		CausalChain:      []string{"insufficient signal"},
		PriorProbability: placeholderConfidence,
	}
}

func hasDebtType(hypotheses []*domain.Hypothesis, debt domain.DebtType) bool {
	for _, h := range hypotheses {
		if h.DebtType == debt {
			return true
		}
	}
	return false
}
