package domain

import "testing"

func TestCategoryFromNodeID(t *testing.T) {
	tests := []struct {
		nodeID string
		want   NodeCategory
	}{
		{"meal_8f2c", NodeMeal},
		{"environment_1", NodeEnvironmental},
		{"env_1", NodeEnvironmental},
		{"behavior_passive", NodeBehavioral},
		{"glucose_abc", NodeGlucose},
		{"physio_x", NodePhysiological},
		{"symptom_tired", NodeSymptom},
		{"noprefix", NodeUnknown},
		{"widget_1", NodeUnknown},
		{"", NodeUnknown},
	}

	for _, tt := range tests {
		if got := CategoryFromNodeID(tt.nodeID); got != tt.want {
			t.Fatalf("CategoryFromNodeID(%q) = %q, want %q", tt.nodeID, got, tt.want)
		}
	}
}

func TestCausalEdge_Categories_ExplicitWins(t *testing.T) {
	edge := &CausalEdge{
		SourceNodeID:   "custom_source",
		TargetNodeID:   "custom_target",
		SourceCategory: NodeMeal,
		TargetCategory: NodeGlucose,
	}

	src, dst := edge.Categories()
	if src != NodeMeal || dst != NodeGlucose {
		t.Fatalf("expected explicit categories, got %s -> %s", src, dst)
	}
}

func TestCausalEdge_Categories_PrefixFallback(t *testing.T) {
	edge := &CausalEdge{
		SourceNodeID: "meal_1",
		TargetNodeID: "glucose_2",
	}

	src, dst := edge.Categories()
	if src != NodeMeal || dst != NodeGlucose {
		t.Fatalf("expected prefix-inferred categories, got %s -> %s", src, dst)
	}
}

func TestValidNodeCategory(t *testing.T) {
	for _, c := range []NodeCategory{NodeMeal, NodeEnvironmental, NodeBehavioral, NodeGlucose, NodePhysiological, NodeSymptom} {
		if !ValidNodeCategory(string(c)) {
			t.Fatalf("expected %q to be valid", c)
		}
	}
	if ValidNodeCategory("") || ValidNodeCategory("widget") {
		t.Fatal("expected unknown categories to be invalid")
	}
}

func TestValidEdgeType(t *testing.T) {
	if !ValidEdgeType(string(EdgeMealGlucose)) {
		t.Fatal("expected meal_glucose to be valid")
	}
	if ValidEdgeType("meal_symptom_direct") {
		t.Fatal("expected unknown edge type to be invalid")
	}
}
