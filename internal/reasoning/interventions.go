package reasoning

import (
	"strings"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

const maxCounterfactuals = 5

// templateFamily groups hand-curated counterfactual templates. Impact,
// effort and confidence are literal table values, never computed.
type templateFamily string

const (
	familyMeal        templateFamily = "meal"
	familyScreen      templateFamily = "screen"
	familyGlucose     templateFamily = "glucose"
	familyEnvironment templateFamily = "environment"
	familySleep       templateFamily = "sleep"
)

var counterfactualTemplates = map[templateFamily][]domain.Counterfactual{
	familyMeal: {
		{Description: "Swap the highest-glycemic item for a low-GI alternative", Impact: 0.6, Effort: domain.EffortModerate, Confidence: 0.7},
		{Description: "Eat protein or fiber before the carbohydrate portion", Impact: 0.45, Effort: domain.EffortTrivial, Confidence: 0.65},
		{Description: "Take a 10-minute walk within 30 minutes of eating", Impact: 0.5, Effort: domain.EffortTrivial, Confidence: 0.75},
		{Description: "Split the meal into two smaller portions two hours apart", Impact: 0.4, Effort: domain.EffortModerate, Confidence: 0.55},
	},
	familyScreen: {
		{Description: "Replace the first 20 minutes of scrolling with any off-screen activity", Impact: 0.5, Effort: domain.EffortModerate, Confidence: 0.6},
		{Description: "Enable grayscale mode during low-energy hours", Impact: 0.35, Effort: domain.EffortTrivial, Confidence: 0.5},
		{Description: "Move social apps off the home screen", Impact: 0.3, Effort: domain.EffortTrivial, Confidence: 0.55},
	},
	familyGlucose: {
		{Description: "Front-load carbohydrates earlier in the day", Impact: 0.5, Effort: domain.EffortModerate, Confidence: 0.6},
		{Description: "Pair afternoon snacks with protein to flatten the curve", Impact: 0.45, Effort: domain.EffortTrivial, Confidence: 0.65},
		{Description: "Avoid fast-absorbing sugar on an empty stomach", Impact: 0.55, Effort: domain.EffortModerate, Confidence: 0.7},
	},
	familyEnvironment: {
		{Description: "Run an air purifier in the room you spend most time in", Impact: 0.4, Effort: domain.EffortModerate, Confidence: 0.55},
		{Description: "Shift outdoor activity away from peak pollen hours", Impact: 0.35, Effort: domain.EffortModerate, Confidence: 0.5},
		{Description: "Ventilate and cool the bedroom before sleep", Impact: 0.3, Effort: domain.EffortTrivial, Confidence: 0.5},
	},
	familySleep: {
		{Description: "Move bedtime 45 minutes earlier tonight", Impact: 0.6, Effort: domain.EffortModerate, Confidence: 0.7},
		{Description: "Cut screens for the final hour before bed", Impact: 0.5, Effort: domain.EffortModerate, Confidence: 0.65},
		{Description: "Keep wake time fixed even after a short night", Impact: 0.4, Effort: domain.EffortSignificant, Confidence: 0.6},
	},
}

// nodeIDFamilies maps substrings of event-node identifiers to template
// families.
var nodeIDFamilies = []struct {
	keyword string
	family  templateFamily
}{
	{"meal", familyMeal},
	{"behavioral", familyScreen},
	{"behavior", familyScreen},
	{"screen", familyScreen},
	{"glucose", familyGlucose},
	{"environment", familyEnvironment},
}

// chainFamilies maps causal-chain keywords to template families for the
// by-symptom entry point.
var chainFamilies = []struct {
	keywords []string
	family   templateFamily
}{
	{[]string{"meal", "glycemic", "food", "eat"}, familyMeal},
	{[]string{"screen", "scroll", "passive", "phone"}, familyScreen},
	{[]string{"glucose", "crash", "sugar", "spike"}, familyGlucose},
	{[]string{"air quality", "pollen", "heat", "environment"}, familyEnvironment},
	{[]string{"sleep", "recovery"}, familySleep},
}

// InterventionCalculator turns event nodes or explanations into actionable
// counterfactuals drawn from the static template tables.
type InterventionCalculator struct{}

func NewInterventionCalculator() *InterventionCalculator {
	return &InterventionCalculator{}
}

// ForNode returns the template family matching a raw event-node identifier.
// The family list is already small, so no cap is applied.
func (c *InterventionCalculator) ForNode(nodeID string) []domain.Counterfactual {
	lower := strings.ToLower(nodeID)
	for _, m := range nodeIDFamilies {
		if strings.Contains(lower, m.keyword) {
			return append([]domain.Counterfactual(nil), counterfactualTemplates[m.family]...)
		}
	}
	return c.fallback()
}

// ForSymptom matches the causal-chain text of each explanation against the
// template families, concatenates the matches, deduplicates by description
// and caps the result.
func (c *InterventionCalculator) ForSymptom(symptom string, explanations []domain.CausalExplanation) []domain.Counterfactual {
	var matched []domain.Counterfactual
	seenFamilies := map[templateFamily]bool{}

	for _, exp := range explanations {
		text := strings.ToLower(strings.Join(exp.CausalChain, " "))
		for _, m := range chainFamilies {
			if seenFamilies[m.family] || !matchesAny(text, m.keywords) {
				continue
			}
			seenFamilies[m.family] = true
			matched = append(matched, counterfactualTemplates[m.family]...)
		}
	}

	if len(matched) == 0 {
		return c.fallback()
	}
	return capAndDedupe(matched, maxCounterfactuals)
}

// fallback combines the top meal and sleep templates when no family
// matches.
func (c *InterventionCalculator) fallback() []domain.Counterfactual {
	out := []domain.Counterfactual{}
	out = append(out, counterfactualTemplates[familyMeal][:2]...)
	out = append(out, counterfactualTemplates[familySleep][:2]...)
	return out
}

func capAndDedupe(in []domain.Counterfactual, limit int) []domain.Counterfactual {
	seen := map[string]bool{}
	out := make([]domain.Counterfactual, 0, limit)
	for _, cf := range in {
		if seen[cf.Description] {
			continue
		}
		seen[cf.Description] = true
		out = append(out, cf)
		if len(out) == limit {
			break
		}
	}
	return out
}
