package reasoning

import (
	"context"
	"fmt"
	"time"

	"github.com/arjunsehgal/vitalis/internal/domain"
	"go.uber.org/zap"
)

const (
	// MaxEdgeConfidence caps learned edge confidence; an edge is never
	// treated as certain.
	MaxEdgeConfidence = 0.99

	confirmConfidenceStep    = 0.02
	disconfirmConfidenceStep = 0.01

	// Post-meal glucose response window.
	postMealMin = 30 * time.Minute
	postMealMax = 120 * time.Minute

	spikeThresholdMgdl = 140.0
	highGlycemicLoad   = 25.0
	lowGlycemicLoad    = 20.0

	initialSpikeStrength   = 0.6
	initialNoSpikeStrength = 0.3
	initialEdgeConfidence  = 0.3
)

// EdgeWeightLearner adjusts causal edge strengths and confidences from
// confirm/disconfirm signals, online and in batch.
type EdgeWeightLearner struct {
	graph  domain.GraphStore
	health domain.HealthStore
	logger *zap.Logger
}

func NewEdgeWeightLearner(graph domain.GraphStore, health domain.HealthStore, logger *zap.Logger) *EdgeWeightLearner {
	return &EdgeWeightLearner{graph: graph, health: health, logger: logger}
}

// UpdateEdge folds one confirm/disconfirm signal into an edge and writes it
// back through the store. More-confident edges absorb smaller updates, so
// learning follows a diminishing-returns curve. Confidence rises on
// disconfirmation too: a disconfirming observation is itself informative.
func (l *EdgeWeightLearner) UpdateEdge(ctx context.Context, edge domain.CausalEdge, confirmed bool) (domain.CausalEdge, error) {
	observationWeight := 1.0 / (1.0 + edge.Confidence*10.0)

	if confirmed {
		edge.CausalStrength += (1.0 - edge.CausalStrength) * observationWeight
		edge.Confidence += confirmConfidenceStep
	} else {
		edge.CausalStrength -= edge.CausalStrength * observationWeight
		edge.Confidence += disconfirmConfidenceStep
	}
	edge.CausalStrength = domain.Clamp01(edge.CausalStrength)
	if edge.Confidence > MaxEdgeConfidence {
		edge.Confidence = MaxEdgeConfidence
	}

	if err := l.graph.UpsertEdge(ctx, &edge); err != nil {
		return edge, fmt.Errorf("persist edge update: %w", err)
	}

	l.logger.Debug("edge updated",
		zap.String("source", edge.SourceNodeID),
		zap.String("target", edge.TargetNodeID),
		zap.Bool("confirmed", confirmed),
		zap.Float64("strength", edge.CausalStrength),
		zap.Float64("confidence", edge.Confidence))

	return edge, nil
}

// BatchReport summarizes one BatchUpdate run.
type BatchReport struct {
	MealsScanned     int `json:"meals_scanned"`
	MealsSkipped     int `json:"meals_skipped"`
	EdgesUpdated     int `json:"edges_updated"`
	EdgesCreated     int `json:"edges_created"`
	Confirmations    int `json:"confirmations"`
	Disconfirmations int `json:"disconfirmations"`
}

// BatchUpdate mines meal/glucose-response pairs in the window and feeds the
// resulting signals through UpdateEdge. A meal's edge is confirmed when its
// predicted impact matches the observed one in either direction: a heavy
// meal that spiked, or a light meal that did not.
func (l *EdgeWeightLearner) BatchUpdate(ctx context.Context, window domain.Window) (*BatchReport, error) {
	meals, err := l.health.QueryMeals(ctx, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("query meals: %w", err)
	}

	report := &BatchReport{}
	for _, meal := range meals {
		report.MealsScanned++

		readings, err := l.health.QueryGlucose(ctx, meal.EatenAt.Add(postMealMin), meal.EatenAt.Add(postMealMax))
		if err != nil {
			return nil, fmt.Errorf("query post-meal glucose: %w", err)
		}
		if len(readings) == 0 {
			report.MealsSkipped++
			continue
		}

		peak := readings[0]
		for _, r := range readings[1:] {
			if r.Value > peak.Value {
				peak = r
			}
		}
		spikeOccurred := peak.Value > spikeThresholdMgdl

		confirmed := (meal.GlycemicLoad > highGlycemicLoad && spikeOccurred) ||
			(meal.GlycemicLoad < lowGlycemicLoad && !spikeOccurred)
		if confirmed {
			report.Confirmations++
		} else {
			report.Disconfirmations++
		}

		edges, err := l.graph.EdgesBySource(ctx, meal.NodeID())
		if err != nil {
			return nil, fmt.Errorf("query meal edges: %w", err)
		}

		updatedAny := false
		for _, edge := range edges {
			if edge.EdgeType != domain.EdgeMealGlucose {
				continue
			}
			if _, err := l.UpdateEdge(ctx, edge, confirmed); err != nil {
				return nil, err
			}
			report.EdgesUpdated++
			updatedAny = true
		}
		if updatedAny {
			continue
		}

		strength := initialNoSpikeStrength
		if spikeOccurred {
			strength = initialSpikeStrength
		}
		edge := domain.CausalEdge{
			SourceNodeID:          meal.NodeID(),
			TargetNodeID:          "glucose_" + peak.ID.String(),
			SourceCategory:        domain.NodeMeal,
			TargetCategory:        domain.NodeGlucose,
			EdgeType:              domain.EdgeMealGlucose,
			CausalStrength:        strength,
			TemporalOffsetSeconds: int64(peak.RecordedAt.Sub(meal.EatenAt).Seconds()),
			Confidence:            initialEdgeConfidence,
		}
		if err := l.graph.UpsertEdge(ctx, &edge); err != nil {
			return nil, fmt.Errorf("create meal edge: %w", err)
		}
		report.EdgesCreated++
	}

	l.logger.Info("batch edge update complete",
		zap.Int("meals_scanned", report.MealsScanned),
		zap.Int("edges_updated", report.EdgesUpdated),
		zap.Int("edges_created", report.EdgesCreated))

	return report, nil
}
