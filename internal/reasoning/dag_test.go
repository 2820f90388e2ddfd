package reasoning

import (
	"math"
	"testing"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

func edge(src, dst domain.NodeCategory, edgeType domain.EdgeType, strength float64) domain.CausalEdge {
	return domain.CausalEdge{
		SourceNodeID:   string(src) + "_1",
		TargetNodeID:   string(dst) + "_1",
		SourceCategory: src,
		TargetCategory: dst,
		EdgeType:       edgeType,
		CausalStrength: strength,
	}
}

func TestNewCausalDAG_DropsInvalidEdges(t *testing.T) {
	edges := []domain.CausalEdge{
		edge(domain.NodeMeal, domain.NodeGlucose, domain.EdgeMealGlucose, 0.8),
		// Reverse-causal, must be dropped silently.
		edge(domain.NodeSymptom, domain.NodeMeal, domain.EdgeMealGlucose, 0.9),
		// Forbidden pair.
		edge(domain.NodeBehavioral, domain.NodeGlucose, domain.EdgeMealGlucose, 0.9),
	}

	dag := NewCausalDAG(edges)

	if n := len(dag.Neighbors(domain.NodeMeal)); n != 1 {
		t.Fatalf("expected 1 meal edge, got %d", n)
	}
	if n := len(dag.Neighbors(domain.NodeSymptom)); n != 0 {
		t.Fatalf("expected symptom to have no outgoing edges, got %d", n)
	}
	if n := len(dag.Neighbors(domain.NodeBehavioral)); n != 0 {
		t.Fatalf("expected forbidden behavioral edge to be dropped, got %d", n)
	}
}

func TestNewCausalDAG_ClampsWeights(t *testing.T) {
	dag := NewCausalDAG([]domain.CausalEdge{
		edge(domain.NodeMeal, domain.NodeGlucose, domain.EdgeMealGlucose, 1.7),
	})

	neighbors := dag.Neighbors(domain.NodeMeal)
	if len(neighbors) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(neighbors))
	}
	if neighbors[0].Weight != 1.0 {
		t.Fatalf("expected weight clamped to 1.0, got %f", neighbors[0].Weight)
	}
}

func TestTracePaths_FindsAllPathsToSymptom(t *testing.T) {
	dag := NewCausalDAG([]domain.CausalEdge{
		edge(domain.NodeMeal, domain.NodeGlucose, domain.EdgeMealGlucose, 0.8),
		edge(domain.NodeGlucose, domain.NodePhysiological, domain.EdgeGlucosePhysiological, 0.7),
		edge(domain.NodeGlucose, domain.NodeSymptom, domain.EdgeGlucoseSymptom, 0.6),
		edge(domain.NodePhysiological, domain.NodeSymptom, domain.EdgePhysiologicalSymptom, 0.9),
	})

	paths := dag.TracePaths(domain.NodeMeal)
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths from meal to symptom, got %d", len(paths))
	}
	for _, p := range paths {
		if p[0] != domain.NodeMeal {
			t.Fatalf("expected path to start at meal, got %s", p[0])
		}
		if p[len(p)-1] != domain.NodeSymptom {
			t.Fatalf("expected path to end at symptom, got %s", p[len(p)-1])
		}
	}
}

func TestTracePaths_EmptyWhenDisconnected(t *testing.T) {
	dag := NewCausalDAG([]domain.CausalEdge{
		edge(domain.NodeMeal, domain.NodeGlucose, domain.EdgeMealGlucose, 0.8),
	})

	if paths := dag.TracePaths(domain.NodeMeal); len(paths) != 0 {
		t.Fatalf("expected no complete paths, got %d", len(paths))
	}
}

func TestPathStrength_ProductOfWeights(t *testing.T) {
	dag := NewCausalDAG([]domain.CausalEdge{
		edge(domain.NodeMeal, domain.NodeGlucose, domain.EdgeMealGlucose, 0.8),
		edge(domain.NodeGlucose, domain.NodeSymptom, domain.EdgeGlucoseSymptom, 0.5),
	})

	got := dag.PathStrength([]domain.NodeCategory{domain.NodeMeal, domain.NodeGlucose, domain.NodeSymptom})
	if math.Abs(got-0.4) > 1e-9 {
		t.Fatalf("expected path strength 0.4, got %f", got)
	}
}

func TestPathStrength_MissingEdgeScoresZero(t *testing.T) {
	dag := NewCausalDAG([]domain.CausalEdge{
		edge(domain.NodeMeal, domain.NodeGlucose, domain.EdgeMealGlucose, 0.8),
	})

	got := dag.PathStrength([]domain.NodeCategory{domain.NodeMeal, domain.NodeGlucose, domain.NodeSymptom})
	if got != 0 {
		t.Fatalf("expected broken path to score 0, got %f", got)
	}
}

func TestPathStrength_ShortPathsScoreZero(t *testing.T) {
	dag := NewCausalDAG(nil)

	if got := dag.PathStrength(nil); got != 0 {
		t.Fatalf("expected empty path to score 0, got %f", got)
	}
	if got := dag.PathStrength([]domain.NodeCategory{domain.NodeMeal}); got != 0 {
		t.Fatalf("expected single-node path to score 0, got %f", got)
	}
}

func TestPathStrength_ParallelEdgesUseStrongest(t *testing.T) {
	dag := NewCausalDAG([]domain.CausalEdge{
		edge(domain.NodeGlucose, domain.NodeSymptom, domain.EdgeGlucoseSymptom, 0.3),
		{
			SourceNodeID:   "glucose_2",
			TargetNodeID:   "symptom_2",
			SourceCategory: domain.NodeGlucose,
			TargetCategory: domain.NodeSymptom,
			EdgeType:       domain.EdgeGlucoseSymptom,
			CausalStrength: 0.9,
		},
	})

	got := dag.PathStrength([]domain.NodeCategory{domain.NodeGlucose, domain.NodeSymptom})
	if math.Abs(got-0.9) > 1e-9 {
		t.Fatalf("expected strongest parallel edge 0.9, got %f", got)
	}
}
