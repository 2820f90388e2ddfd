package reasoning

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

// mockHealthStore implements domain.HealthStore over in-memory slices.
type mockHealthStore struct {
	glucose   []domain.GlucoseReading
	meals     []domain.Meal
	behaviors []domain.BehaviorEvent
	env       []domain.EnvironmentSample
	sleep     []domain.SleepSample

	err error
}

func (m *mockHealthStore) QueryGlucose(ctx context.Context, from, to time.Time) ([]domain.GlucoseReading, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.GlucoseReading
	for _, r := range m.glucose {
		if !r.RecordedAt.Before(from) && r.RecordedAt.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockHealthStore) QueryMeals(ctx context.Context, from, to time.Time) ([]domain.Meal, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.meals, nil
}

func (m *mockHealthStore) QueryBehaviors(ctx context.Context, from, to time.Time) ([]domain.BehaviorEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.behaviors, nil
}

func (m *mockHealthStore) QueryEnvironment(ctx context.Context, from, to time.Time) ([]domain.EnvironmentSample, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.env, nil
}

func (m *mockHealthStore) QuerySleep(ctx context.Context, from, to time.Time) ([]domain.SleepSample, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sleep, nil
}

// mockGraphStore implements domain.GraphStore in memory, keyed by
// (source, target, edge_type).
type mockGraphStore struct {
	edges   []domain.CausalEdge
	upserts int

	err error
}

func (m *mockGraphStore) EdgesBySource(ctx context.Context, sourceNodeID string) ([]domain.CausalEdge, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.CausalEdge
	for _, e := range m.edges {
		if e.SourceNodeID == sourceNodeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockGraphStore) EdgesByType(ctx context.Context, edgeType domain.EdgeType) ([]domain.CausalEdge, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.CausalEdge
	for _, e := range m.edges {
		if e.EdgeType == edgeType {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockGraphStore) AllEdges(ctx context.Context) ([]domain.CausalEdge, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.edges, nil
}

func (m *mockGraphStore) CountEdges(ctx context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.edges), nil
}

func (m *mockGraphStore) UpsertEdge(ctx context.Context, edge *domain.CausalEdge) error {
	if m.err != nil {
		return m.err
	}
	m.upserts++
	for i := range m.edges {
		if m.edges[i].SourceNodeID == edge.SourceNodeID &&
			m.edges[i].TargetNodeID == edge.TargetNodeID &&
			m.edges[i].EdgeType == edge.EdgeType {
			m.edges[i] = *edge
			return nil
		}
	}
	m.edges = append(m.edges, *edge)
	return nil
}

// mockTool implements domain.AnalysisTool with a canned observation.
type mockTool struct {
	name        string
	target      domain.DebtType
	observation domain.ToolObservation
	err         error

	calls int
}

func (t *mockTool) Name() string { return t.name }

func (t *mockTool) TargetDebtType() domain.DebtType { return t.target }

func (t *mockTool) Analyze(ctx context.Context, hypotheses []*domain.Hypothesis, store domain.HealthStore, window domain.Window) (domain.ToolObservation, error) {
	t.calls++
	if t.err != nil {
		return domain.ToolObservation{}, t.err
	}
	obs := t.observation
	if obs.ToolName == "" {
		obs.ToolName = t.name
	}
	return obs, nil
}

// mockNarrative implements domain.NarrativeGenerator.
type mockNarrative struct {
	response string
	err      error

	calls int
}

func (m *mockNarrative) Generate(ctx context.Context, symptom string, hypothesis *domain.Hypothesis, observations []domain.ToolObservation) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if m.response != "" {
		return m.response, nil
	}
	return "narrative for " + string(hypothesis.DebtType), nil
}

// mockSessionStore implements domain.SessionStore.
type mockSessionStore struct {
	created []*domain.ReasoningSession
	err     error
}

func (m *mockSessionStore) Create(ctx context.Context, session *domain.ReasoningSession) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, session)
	return nil
}

func (m *mockSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReasoningSession, error) {
	return nil, nil
}

func (m *mockSessionStore) FindSimilar(ctx context.Context, embedding []float32, limit int) ([]domain.SessionWithScore, error) {
	return nil, nil
}

// mockEmbedder implements domain.EmbeddingClient.
type mockEmbedder struct {
	err error
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}
