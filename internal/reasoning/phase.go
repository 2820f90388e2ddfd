package reasoning

import (
	"context"
	"fmt"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

const (
	// Learned-edge counts at which the engine graduates between phases.
	coldStartEdgeCount = 10
	matureEdgeCount    = 50
)

// GraphPhaseTracker derives the engine's maturity phase from how many
// causal edges have been learned. With too little learned data, iterative
// scoring is not trusted and the rule engine handles everything.
type GraphPhaseTracker struct {
	graph domain.GraphStore
}

func NewGraphPhaseTracker(graph domain.GraphStore) *GraphPhaseTracker {
	return &GraphPhaseTracker{graph: graph}
}

func (t *GraphPhaseTracker) PhaseConfig(ctx context.Context) (domain.PhaseConfig, error) {
	count, err := t.graph.CountEdges(ctx)
	if err != nil {
		return domain.PhaseConfig{}, fmt.Errorf("count edges: %w", err)
	}

	switch {
	case count < coldStartEdgeCount:
		return domain.PhaseConfig{UseReAct: false, MaxTools: 0}, nil
	case count < matureEdgeCount:
		return domain.PhaseConfig{UseReAct: true, MaxTools: 2}, nil
	default:
		return domain.PhaseConfig{UseReAct: true, MaxTools: 3}, nil
	}
}

// StaticPhaseTracker returns a fixed phase; used in tests and for forcing a
// mode from configuration.
type StaticPhaseTracker struct {
	Config domain.PhaseConfig
}

func (t *StaticPhaseTracker) PhaseConfig(ctx context.Context) (domain.PhaseConfig, error) {
	return t.Config, nil
}
