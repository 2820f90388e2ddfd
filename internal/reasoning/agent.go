package reasoning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arjunsehgal/vitalis/internal/domain"
	"go.uber.org/zap"
)

// ErrDataUnavailable wraps any underlying health-store query failure. It is
// the only error class the reasoning core surfaces; empty results and
// degraded modes are normal outcomes.
var ErrDataUnavailable = errors.New("health data unavailable")

func dataUnavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrDataUnavailable, op, err)
}

const (
	// The hard iteration cap is the engine's latency bound; one synchronous
	// tool call per iteration, no timeout needed.
	maxLoopIterations = 3

	resolveConfidence       = 0.7
	ruleSupersedeConfidence = 0.4
	explanationFloor        = 0.15
	maxExplanations         = 3

	defaultAnalysisWindow = 6 * time.Hour
)

// ReActAgent runs the bounded Thought, Act, Observe cycle over one symptom.
// One Reason call is one sequential session; sessions never share state.
type ReActAgent struct {
	health     domain.HealthStore
	registry   domain.ToolRegistry
	rules      domain.RuleEngine
	narrative  domain.NarrativeGenerator
	phase      domain.PhaseTracker
	classifier domain.DebtClassifier
	logger     *zap.Logger

	// Optional: when both are set, completed sessions are persisted with a
	// symptom embedding for similar-session recall.
	sessions domain.SessionStore
	embedder domain.EmbeddingClient

	now func() time.Time
}

func NewReActAgent(
	health domain.HealthStore,
	registry domain.ToolRegistry,
	rules domain.RuleEngine,
	narrative domain.NarrativeGenerator,
	phase domain.PhaseTracker,
	classifier domain.DebtClassifier,
	logger *zap.Logger,
) *ReActAgent {
	return &ReActAgent{
		health:     health,
		registry:   registry,
		rules:      rules,
		narrative:  narrative,
		phase:      phase,
		classifier: classifier,
		logger:     logger,
		now:        time.Now,
	}
}

// SetSessionStore enables session persistence and similar-symptom recall.
func (a *ReActAgent) SetSessionStore(store domain.SessionStore, embedder domain.EmbeddingClient) {
	a.sessions = store
	a.embedder = embedder
}

// Reason produces ranked causal explanations for a free-text symptom. An
// empty result is valid; only store failures are errors.
func (a *ReActAgent) Reason(ctx context.Context, symptom string) ([]domain.CausalExplanation, error) {
	window := domain.WindowEnding(a.now(), defaultAnalysisWindow)

	phase, err := a.phase.PhaseConfig(ctx)
	if err != nil {
		return nil, err
	}
	if !phase.UseReAct {
		a.logger.Info("phase disallows iterative reasoning, delegating to rule engine",
			zap.String("symptom", symptom))
		return a.rules.Evaluate(ctx, symptom, a.health, window)
	}

	state := &domain.AgentState{Symptom: symptom, Window: window}

	// Thought: deterministic hypotheses from the raw windowed data.
	signals, err := gatherSignals(ctx, a.health, window)
	if err != nil {
		return nil, err
	}
	state.Hypotheses = generateHypotheses(symptom, signals)

	// Act/Observe loop. Tool selection depends on the state updated by the
	// previous iteration, so iterations are strictly sequential.
	budget := maxLoopIterations
	if phase.MaxTools < budget {
		budget = phase.MaxTools
	}
	for i := 0; i < budget; i++ {
		tool := a.registry.SelectTool(state)
		if tool == nil {
			break
		}
		obs, err := tool.Analyze(ctx, state.Hypotheses, a.health, window)
		if err != nil {
			return nil, err
		}
		state.Observations = append(state.Observations, obs)
		foldObservation(state, obs)

		a.logger.Debug("observation folded",
			zap.String("tool", obs.ToolName),
			zap.Int("iteration", i+1),
			zap.Float64("top_confidence", state.Top().Confidence))

		if state.Top().Confidence >= resolveConfidence {
			state.Resolved = true
			break
		}
	}

	// Inconclusive sessions fall through to the rule engine exactly once;
	// its results supersede weak agent output.
	if !state.Resolved {
		ruleResults, err := a.rules.Evaluate(ctx, symptom, a.health, window)
		if err != nil {
			return nil, err
		}
		top := state.Top()
		if len(ruleResults) > 0 && (top == nil || top.Confidence < ruleSupersedeConfidence) {
			a.logger.Info("rule engine superseded inconclusive agent",
				zap.String("symptom", symptom),
				zap.Int("rule_results", len(ruleResults)))
			return ruleResults, nil
		}
	}

	explanations, err := a.buildExplanations(ctx, state)
	if err != nil {
		return nil, err
	}
	a.persistSession(ctx, symptom, explanations)
	return explanations, nil
}

// foldObservation applies one observation's evidence to every matching
// hypothesis. The update is additive rather than multiplicative so a single
// noisy tool cannot collapse a hypothesis to near zero.
func foldObservation(state *domain.AgentState, obs domain.ToolObservation) {
	for _, h := range state.Hypotheses {
		score, ok := obs.Evidence[h.DebtType]
		if !ok {
			continue
		}
		delta := score * obs.Confidence
		h.SetConfidence(h.Confidence + delta)
		if delta > 0 {
			h.AddSupporting(fmt.Sprintf("%s: %+.0f%%", obs.ToolName, delta*100))
		} else if delta < 0 {
			h.AddContradicting(fmt.Sprintf("%s: %+.0f%%", obs.ToolName, delta*100))
		}
	}
	domain.SortHypotheses(state.Hypotheses)
}

// buildExplanations assembles the final output from the surviving
// hypotheses. The classifier's category score wins over the hypothesis's
// own confidence when it has an opinion; narrative generation is the only
// suspending step and degrades to the hypothesis description on failure.
func (a *ReActAgent) buildExplanations(ctx context.Context, state *domain.AgentState) ([]domain.CausalExplanation, error) {
	scores := a.classifier.Classify(state.Hypotheses, state.Observations)

	var explanations []domain.CausalExplanation
	for _, h := range state.Hypotheses {
		if h.Confidence <= explanationFloor {
			continue
		}
		if len(explanations) == maxExplanations {
			break
		}

		strength := h.Confidence
		if s, ok := scores[h.DebtType]; ok {
			strength = s
		}

		narrative, err := a.narrative.Generate(ctx, state.Symptom, h, state.Observations)
		if err != nil {
			a.logger.Warn("narrative generation failed, using description",
				zap.String("debt_type", string(h.DebtType)), zap.Error(err))
			narrative = h.Description
		}

		explanations = append(explanations, domain.CausalExplanation{
			Symptom:     state.Symptom,
			DebtType:    h.DebtType,
			CausalChain: h.CausalChain,
			Strength:    strength,
			Confidence:  h.Confidence,
			Narrative:   narrative,
		})
	}
	return explanations, nil
}

// persistSession records a completed session for similar-symptom recall.
// Best effort: recall is a convenience surface, not part of the reasoning
// contract, so failures are logged and dropped.
func (a *ReActAgent) persistSession(ctx context.Context, symptom string, explanations []domain.CausalExplanation) {
	if a.sessions == nil || len(explanations) == 0 {
		return
	}
	session := &domain.ReasoningSession{Symptom: symptom, Explanations: explanations}
	if a.embedder != nil {
		embedding, err := a.embedder.Embed(ctx, symptom)
		if err != nil {
			a.logger.Warn("symptom embedding failed", zap.Error(err))
		} else {
			session.Embedding = embedding
		}
	}
	if err := a.sessions.Create(ctx, session); err != nil {
		a.logger.Warn("session persistence failed", zap.Error(err))
	}
}
