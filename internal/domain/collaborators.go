package domain

import "context"

// AnalysisTool is a polymorphic evidence-gathering capability. A tool
// inspects the current hypotheses and the windowed health data and returns
// one immutable observation.
type AnalysisTool interface {
	Name() string
	// TargetDebtType names the category the tool primarily scores; the
	// registry uses it to pick the most informative tool.
	TargetDebtType() DebtType
	Analyze(ctx context.Context, hypotheses []*Hypothesis, store HealthStore, window Window) (ToolObservation, error)
}

// ToolRegistry selects the single most informative tool for the current
// state, or nil when no tool would add information (which ends the loop).
type ToolRegistry interface {
	SelectTool(state *AgentState) AnalysisTool
}

// RuleEngine is the deterministic fallback path used when the maturity
// phase disallows iterative reasoning or the loop is inconclusive.
type RuleEngine interface {
	Evaluate(ctx context.Context, symptom string, store HealthStore, window Window) ([]CausalExplanation, error)
}

// NarrativeGenerator produces the human-readable narrative for one
// explanation. It is the only potentially suspending collaborator in the
// session; everything before it is synchronous and side-effect-free.
type NarrativeGenerator interface {
	Generate(ctx context.Context, symptom string, hypothesis *Hypothesis, observations []ToolObservation) (string, error)
}

// PhaseConfig is the maturity tracker's verdict on how much iterative
// reasoning the learned data can support.
type PhaseConfig struct {
	UseReAct bool `json:"use_react"`
	MaxTools int  `json:"max_tools"`
}

type PhaseTracker interface {
	PhaseConfig(ctx context.Context) (PhaseConfig, error)
}

// DebtClassifier scores each debt type given the session's hypotheses and
// observations. A category absent from the result means the classifier has
// no opinion and the caller falls back to the hypothesis's own confidence.
type DebtClassifier interface {
	Classify(hypotheses []*Hypothesis, observations []ToolObservation) map[DebtType]float64
}

// EmbeddingClient turns text into a vector for similar-session recall.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
