package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NodeCategory classifies a causal graph node. The set is closed and its
// position in the fixed causal order (internal/reasoning) is part of the
// domain contract.
type NodeCategory string

const (
	NodeMeal          NodeCategory = "meal"
	NodeEnvironmental NodeCategory = "environmental"
	NodeBehavioral    NodeCategory = "behavioral"
	NodeGlucose       NodeCategory = "glucose"
	NodePhysiological NodeCategory = "physiological"
	NodeSymptom       NodeCategory = "symptom"
	NodeUnknown       NodeCategory = ""
)

func ValidNodeCategory(c string) bool {
	switch NodeCategory(c) {
	case NodeMeal, NodeEnvironmental, NodeBehavioral, NodeGlucose, NodePhysiological, NodeSymptom:
		return true
	}
	return false
}

// EdgeType is the closed enumeration of learned relation kinds.
type EdgeType string

const (
	EdgeMealGlucose          EdgeType = "meal_glucose"
	EdgeGlucosePhysiological EdgeType = "glucose_physiological"
	EdgeGlucoseSymptom       EdgeType = "glucose_symptom"
	EdgeBehavioralSymptom    EdgeType = "behavioral_symptom"
	EdgeEnvironmentalSymptom EdgeType = "environmental_symptom"
	EdgePhysiologicalSymptom EdgeType = "physiological_symptom"
)

func ValidEdgeType(e string) bool {
	switch EdgeType(e) {
	case EdgeMealGlucose, EdgeGlucosePhysiological, EdgeGlucoseSymptom,
		EdgeBehavioralSymptom, EdgeEnvironmentalSymptom, EdgePhysiologicalSymptom:
		return true
	}
	return false
}

// nodeIDPrefixes maps the legacy node-ID prefix convention to categories.
// New edges carry SourceCategory/TargetCategory explicitly; prefix inference
// remains only as a fallback for rows written before that column existed.
var nodeIDPrefixes = map[string]NodeCategory{
	"meal":        NodeMeal,
	"environment": NodeEnvironmental,
	"env":         NodeEnvironmental,
	"behavior":    NodeBehavioral,
	"glucose":     NodeGlucose,
	"physio":      NodePhysiological,
	"symptom":     NodeSymptom,
}

// CategoryFromNodeID infers a node category from an ID prefix such as
// "meal_8f2c...". Returns NodeUnknown when no prefix matches.
func CategoryFromNodeID(nodeID string) NodeCategory {
	prefix, _, ok := strings.Cut(nodeID, "_")
	if !ok {
		return NodeUnknown
	}
	return nodeIDPrefixes[prefix]
}

// CausalEdge is a directed, weighted, timestamped relation between two
// identified nodes. Strength and confidence are learned; confidence is
// monotonically non-decreasing over the life of the edge.
type CausalEdge struct {
	ID                    uuid.UUID    `json:"id"`
	SourceNodeID          string       `json:"source_node_id"`
	TargetNodeID          string       `json:"target_node_id"`
	SourceCategory        NodeCategory `json:"source_category"`
	TargetCategory        NodeCategory `json:"target_category"`
	EdgeType              EdgeType     `json:"edge_type"`
	CausalStrength        float64      `json:"causal_strength"`
	TemporalOffsetSeconds int64        `json:"temporal_offset_seconds"`
	Confidence            float64      `json:"confidence"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

// Categories resolves the edge's endpoint categories, falling back to the
// node-ID prefix convention for legacy rows.
func (e *CausalEdge) Categories() (NodeCategory, NodeCategory) {
	src, dst := e.SourceCategory, e.TargetCategory
	if src == NodeUnknown {
		src = CategoryFromNodeID(e.SourceNodeID)
	}
	if dst == NodeUnknown {
		dst = CategoryFromNodeID(e.TargetNodeID)
	}
	return src, dst
}

type GraphStore interface {
	EdgesBySource(ctx context.Context, sourceNodeID string) ([]CausalEdge, error)
	EdgesByType(ctx context.Context, edgeType EdgeType) ([]CausalEdge, error)
	AllEdges(ctx context.Context) ([]CausalEdge, error)
	CountEdges(ctx context.Context) (int, error)
	// UpsertEdge inserts or updates by (source, target, edge_type) and
	// writes generated fields back into the edge.
	UpsertEdge(ctx context.Context, edge *CausalEdge) error
}
