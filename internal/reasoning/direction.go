package reasoning

import "github.com/arjunsehgal/vitalis/internal/domain"

// CausalOrder is the fixed topological ordering of node categories. A cause
// must not come after its effect in this order. Constructed once, never
// mutated.
var CausalOrder = []domain.NodeCategory{
	domain.NodeMeal,
	domain.NodeEnvironmental,
	domain.NodeBehavioral,
	domain.NodeGlucose,
	domain.NodePhysiological,
	domain.NodeSymptom,
}

var causalOrderIndex = func() map[domain.NodeCategory]int {
	idx := make(map[domain.NodeCategory]int, len(CausalOrder))
	for i, c := range CausalOrder {
		idx[c] = i
	}
	return idx
}()

type categoryPair struct {
	cause  domain.NodeCategory
	effect domain.NodeCategory
}

// forbiddenPairs encodes known non-causal or reverse-causal relationships
// that the topological order alone does not rule out. Screen time does not
// move glucose directly, and a symptom never causes a meal (reverse
// causation trap).
var forbiddenPairs = map[categoryPair]bool{
	{domain.NodeBehavioral, domain.NodeGlucose}:    true,
	{domain.NodeMeal, domain.NodeEnvironmental}:    true,
	{domain.NodeEnvironmental, domain.NodeGlucose}: true,
	{domain.NodeSymptom, domain.NodeMeal}:          true,
	{domain.NodeSymptom, domain.NodeBehavioral}:    true,
}

// CanCause reports whether an edge from source to target is consistent with
// the fixed domain knowledge. Pure and total over the closed category set:
// unknown categories are never causal.
func CanCause(source, target domain.NodeCategory) bool {
	si, ok := causalOrderIndex[source]
	if !ok {
		return false
	}
	ti, ok := causalOrderIndex[target]
	if !ok {
		return false
	}
	if si > ti {
		return false
	}
	return !forbiddenPairs[categoryPair{source, target}]
}
