package domain

import (
	"sort"
	"time"
)

// DebtType is a category of accumulated physiological or cognitive load.
type DebtType string

const (
	DebtMetabolic DebtType = "metabolic"
	DebtDigital   DebtType = "digital"
	DebtSomatic   DebtType = "somatic"
)

// AllDebtTypes lists every category, in presentation order.
var AllDebtTypes = []DebtType{DebtMetabolic, DebtDigital, DebtSomatic}

func ValidDebtType(d string) bool {
	switch DebtType(d) {
	case DebtMetabolic, DebtDigital, DebtSomatic:
		return true
	}
	return false
}

// Clamp01 clamps a value into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Hypothesis is one candidate causal account of a symptom. Confidence is
// always held in [0, 1]; evidence lists are human-readable audit entries.
type Hypothesis struct {
	DebtType              DebtType `json:"debt_type"`
	Description           string   `json:"description"`
	Confidence            float64  `json:"confidence"`
	CausalChain           []string `json:"causal_chain"`
	SupportingEvidence    []string `json:"supporting_evidence,omitempty"`
	ContradictingEvidence []string `json:"contradicting_evidence,omitempty"`
	PriorProbability      float64  `json:"prior_probability"`
}

// SetConfidence assigns a clamped confidence.
func (h *Hypothesis) SetConfidence(v float64) {
	h.Confidence = Clamp01(v)
}

func (h *Hypothesis) AddSupporting(entry string) {
	h.SupportingEvidence = append(h.SupportingEvidence, entry)
}

func (h *Hypothesis) AddContradicting(entry string) {
	h.ContradictingEvidence = append(h.ContradictingEvidence, entry)
}

// SortHypotheses orders by confidence, highest first. The sort is stable so
// equal-confidence hypotheses keep their generation order.
func SortHypotheses(hypotheses []*Hypothesis) {
	sort.SliceStable(hypotheses, func(i, j int) bool {
		return hypotheses[i].Confidence > hypotheses[j].Confidence
	})
}

// ToolObservation is one tool's evidence contribution: a signed score per
// debt type, scaled by the tool's own confidence when folded in.
type ToolObservation struct {
	ToolName   string               `json:"tool_name"`
	Evidence   map[DebtType]float64 `json:"evidence"`
	Confidence float64              `json:"confidence"`
	Detail     string               `json:"detail,omitempty"`
}

// Window is a half-open observation interval [From, To).
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// WindowEnding returns the window of the given length ending at t.
func WindowEnding(t time.Time, length time.Duration) Window {
	return Window{From: t.Add(-length), To: t}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// AgentState is the working state of one reasoning session.
type AgentState struct {
	Symptom      string
	Hypotheses   []*Hypothesis
	Observations []ToolObservation
	Resolved     bool
	Window       Window
}

// Top returns the highest-confidence hypothesis, or nil when none exist.
// Hypotheses are kept sorted by the fold step.
func (s *AgentState) Top() *Hypothesis {
	if len(s.Hypotheses) == 0 {
		return nil
	}
	return s.Hypotheses[0]
}

// HasObservationFrom reports whether the named tool already ran this
// session.
func (s *AgentState) HasObservationFrom(toolName string) bool {
	for _, obs := range s.Observations {
		if obs.ToolName == toolName {
			return true
		}
	}
	return false
}
