package reasoning

import "github.com/arjunsehgal/vitalis/internal/domain"

const (
	classifierHypothesisWeight  = 0.7
	classifierObservationWeight = 0.3
)

// EvidenceClassifier scores each debt type by blending the hypothesis's own
// confidence with the observation evidence accumulated for that category.
type EvidenceClassifier struct{}

func NewEvidenceClassifier() *EvidenceClassifier {
	return &EvidenceClassifier{}
}

func (c *EvidenceClassifier) Classify(hypotheses []*domain.Hypothesis, observations []domain.ToolObservation) map[domain.DebtType]float64 {
	scores := make(map[domain.DebtType]float64, len(hypotheses))
	for _, h := range hypotheses {
		evidenceSum := 0.0
		for _, obs := range observations {
			if delta, ok := obs.Evidence[h.DebtType]; ok {
				evidenceSum += delta * obs.Confidence
			}
		}
		scores[h.DebtType] = domain.Clamp01(
			h.Confidence*classifierHypothesisWeight + evidenceSum*classifierObservationWeight)
	}
	return scores
}
