package reasoning

import (
	"context"
	"errors"
	"testing"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

func graphWithEdges(n int) *mockGraphStore {
	graph := &mockGraphStore{}
	for i := 0; i < n; i++ {
		graph.edges = append(graph.edges, domain.CausalEdge{
			SourceNodeID: "meal_x",
			TargetNodeID: "glucose_y",
			EdgeType:     domain.EdgeMealGlucose,
		})
	}
	return graph
}

func TestGraphPhaseTracker_Phases(t *testing.T) {
	tests := []struct {
		name      string
		edgeCount int
		useReAct  bool
		maxTools  int
	}{
		{"cold start", 0, false, 0},
		{"just below warm", 9, false, 0},
		{"warm", 10, true, 2},
		{"just below mature", 49, true, 2},
		{"mature", 50, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewGraphPhaseTracker(graphWithEdges(tt.edgeCount))

			cfg, err := tracker.PhaseConfig(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if cfg.UseReAct != tt.useReAct {
				t.Fatalf("expected UseReAct=%v at %d edges, got %v", tt.useReAct, tt.edgeCount, cfg.UseReAct)
			}
			if cfg.MaxTools != tt.maxTools {
				t.Fatalf("expected MaxTools=%d at %d edges, got %d", tt.maxTools, tt.edgeCount, cfg.MaxTools)
			}
		})
	}
}

func TestGraphPhaseTracker_CountFailure(t *testing.T) {
	tracker := NewGraphPhaseTracker(&mockGraphStore{err: errors.New("count failed")})

	if _, err := tracker.PhaseConfig(context.Background()); err == nil {
		t.Fatal("expected error when edge count fails")
	}
}

func TestStaticPhaseTracker(t *testing.T) {
	tracker := &StaticPhaseTracker{Config: domain.PhaseConfig{UseReAct: true, MaxTools: 2}}

	cfg, err := tracker.PhaseConfig(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cfg.UseReAct || cfg.MaxTools != 2 {
		t.Fatalf("expected fixed config back, got %+v", cfg)
	}
}
