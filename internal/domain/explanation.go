package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CausalExplanation is the final output unit of a reasoning session.
// Produced once, never mutated afterward.
type CausalExplanation struct {
	Symptom     string   `json:"symptom"`
	DebtType    DebtType `json:"debt_type"`
	CausalChain []string `json:"causal_chain"`
	Strength    float64  `json:"strength"`
	Confidence  float64  `json:"confidence"`
	Narrative   string   `json:"narrative"`
}

// EffortLevel grades how demanding a counterfactual intervention is.
type EffortLevel string

const (
	EffortTrivial     EffortLevel = "trivial"
	EffortModerate    EffortLevel = "moderate"
	EffortSignificant EffortLevel = "significant"
)

// Counterfactual is a templated "what if" intervention. Impact, effort and
// confidence come from a static table; nothing here is learned online.
type Counterfactual struct {
	Description string      `json:"description"`
	Impact      float64     `json:"impact"`
	Effort      EffortLevel `json:"effort"`
	Confidence  float64     `json:"confidence"`
}

// ReasoningSession is the persisted record of one completed Reason call.
// The symptom embedding enables similar-session recall.
type ReasoningSession struct {
	ID           uuid.UUID           `json:"id"`
	Symptom      string              `json:"symptom"`
	Explanations []CausalExplanation `json:"explanations"`
	Embedding    []float32           `json:"embedding,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// SessionWithScore pairs a past session with its similarity to a query.
type SessionWithScore struct {
	ReasoningSession
	Score float32 `json:"score"`
}

type SessionStore interface {
	Create(ctx context.Context, s *ReasoningSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*ReasoningSession, error)
	FindSimilar(ctx context.Context, embedding []float32, limit int) ([]SessionWithScore, error)
}
