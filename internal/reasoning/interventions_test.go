package reasoning

import (
	"testing"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

func TestForNode_MatchesFamilyBySubstring(t *testing.T) {
	calc := NewInterventionCalculator()

	tests := []struct {
		nodeID    string
		wantFirst string
	}{
		{"meal_8f2c1b", "Swap the highest-glycemic item for a low-GI alternative"},
		{"behavior_passive_123", "Replace the first 20 minutes of scrolling with any off-screen activity"},
		{"glucose_abc", "Front-load carbohydrates earlier in the day"},
		{"environment_77", "Run an air purifier in the room you spend most time in"},
	}

	for _, tt := range tests {
		got := calc.ForNode(tt.nodeID)
		if len(got) == 0 {
			t.Fatalf("expected counterfactuals for %s", tt.nodeID)
		}
		if got[0].Description != tt.wantFirst {
			t.Fatalf("node %s: expected first counterfactual %q, got %q", tt.nodeID, tt.wantFirst, got[0].Description)
		}
	}
}

func TestForNode_UnknownFallsBack(t *testing.T) {
	calc := NewInterventionCalculator()

	got := calc.ForNode("mystery_node")
	if len(got) != 4 {
		t.Fatalf("expected 4 fallback counterfactuals, got %d", len(got))
	}
	// Top two meal then top two sleep templates.
	if got[0].Description != "Swap the highest-glycemic item for a low-GI alternative" {
		t.Fatalf("unexpected first fallback: %q", got[0].Description)
	}
	if got[2].Description != "Move bedtime 45 minutes earlier tonight" {
		t.Fatalf("unexpected third fallback: %q", got[2].Description)
	}
}

func TestForSymptom_MatchesChainKeywords(t *testing.T) {
	calc := NewInterventionCalculator()

	explanations := []domain.CausalExplanation{
		{
			DebtType:    domain.DebtMetabolic,
			CausalChain: []string{"high-glycemic meal consumed", "glucose spike followed by reactive crash"},
		},
	}

	got := calc.ForSymptom("tired", explanations)
	if len(got) == 0 {
		t.Fatal("expected counterfactuals")
	}
	if len(got) > 5 {
		t.Fatalf("expected at most 5 counterfactuals, got %d", len(got))
	}
	// Meal family matches before glucose family.
	if got[0].Description != "Swap the highest-glycemic item for a low-GI alternative" {
		t.Fatalf("unexpected first counterfactual: %q", got[0].Description)
	}
}

func TestForSymptom_DeduplicatesAcrossExplanations(t *testing.T) {
	calc := NewInterventionCalculator()

	// Two explanations matching the same family must not duplicate entries.
	explanations := []domain.CausalExplanation{
		{CausalChain: []string{"extended passive scrolling"}},
		{CausalChain: []string{"screen time before bed"}},
	}

	got := calc.ForSymptom("foggy", explanations)
	seen := map[string]bool{}
	for _, cf := range got {
		if seen[cf.Description] {
			t.Fatalf("duplicate counterfactual %q", cf.Description)
		}
		seen[cf.Description] = true
	}
	if len(got) != 3 {
		t.Fatalf("expected the 3 screen templates once, got %d", len(got))
	}
}

func TestForSymptom_CapsAtFive(t *testing.T) {
	calc := NewInterventionCalculator()

	explanations := []domain.CausalExplanation{
		{CausalChain: []string{"meal", "screen", "glucose", "sleep", "environment"}},
	}

	got := calc.ForSymptom("everything", explanations)
	if len(got) != 5 {
		t.Fatalf("expected cap of 5 counterfactuals, got %d", len(got))
	}
}

func TestForSymptom_NoMatchFallsBack(t *testing.T) {
	calc := NewInterventionCalculator()

	got := calc.ForSymptom("tired", []domain.CausalExplanation{
		{CausalChain: []string{"unrelated chain text"}},
	})
	if len(got) != 4 {
		t.Fatalf("expected 4 fallback counterfactuals, got %d", len(got))
	}
}

func TestForNode_ReturnsCopy(t *testing.T) {
	calc := NewInterventionCalculator()

	first := calc.ForNode("meal_1")
	first[0].Description = "mutated"

	second := calc.ForNode("meal_1")
	if second[0].Description == "mutated" {
		t.Fatal("expected template table to be immutable")
	}
}
