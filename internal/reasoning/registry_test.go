package reasoning

import (
	"testing"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

func stateWith(confidences map[domain.DebtType]float64) *domain.AgentState {
	state := &domain.AgentState{}
	for debt, conf := range confidences {
		state.Hypotheses = append(state.Hypotheses, &domain.Hypothesis{DebtType: debt, Confidence: conf})
	}
	return state
}

func TestSelectTool_PicksMostUncertainTarget(t *testing.T) {
	digital := &mockTool{name: "digital_probe", target: domain.DebtDigital}
	metabolic := &mockTool{name: "metabolic_probe", target: domain.DebtMetabolic}
	registry := NewToolRegistry(digital, metabolic)

	// Digital at 0.5 is maximally uncertain; metabolic at 0.9 is nearly settled.
	state := stateWith(map[domain.DebtType]float64{
		domain.DebtDigital:   0.5,
		domain.DebtMetabolic: 0.9,
	})

	selected := registry.SelectTool(state)
	if selected == nil || selected.Name() != "digital_probe" {
		t.Fatalf("expected digital_probe, got %v", selected)
	}
}

func TestSelectTool_SkipsToolsAlreadyRun(t *testing.T) {
	digital := &mockTool{name: "digital_probe", target: domain.DebtDigital}
	metabolic := &mockTool{name: "metabolic_probe", target: domain.DebtMetabolic}
	registry := NewToolRegistry(digital, metabolic)

	state := stateWith(map[domain.DebtType]float64{
		domain.DebtDigital:   0.5,
		domain.DebtMetabolic: 0.9,
	})
	state.Observations = append(state.Observations, domain.ToolObservation{ToolName: "digital_probe"})

	selected := registry.SelectTool(state)
	if selected == nil || selected.Name() != "metabolic_probe" {
		t.Fatalf("expected metabolic_probe after digital_probe ran, got %v", selected)
	}
}

func TestSelectTool_NilWhenExhausted(t *testing.T) {
	digital := &mockTool{name: "digital_probe", target: domain.DebtDigital}
	registry := NewToolRegistry(digital)

	state := stateWith(map[domain.DebtType]float64{domain.DebtDigital: 0.5})
	state.Observations = append(state.Observations, domain.ToolObservation{ToolName: "digital_probe"})

	if selected := registry.SelectTool(state); selected != nil {
		t.Fatalf("expected nil when every tool has run, got %s", selected.Name())
	}
}

func TestSelectTool_NilWithoutMatchingHypothesis(t *testing.T) {
	digital := &mockTool{name: "digital_probe", target: domain.DebtDigital}
	registry := NewToolRegistry(digital)

	state := stateWith(map[domain.DebtType]float64{domain.DebtMetabolic: 0.5})

	if selected := registry.SelectTool(state); selected != nil {
		t.Fatalf("expected nil without a digital hypothesis, got %s", selected.Name())
	}
}
