package store

import (
	"context"

	"github.com/arjunsehgal/vitalis/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

const edgeColumns = `id, source_node_id, target_node_id, source_category, target_category,
	edge_type, causal_strength, temporal_offset_seconds, confidence, created_at, updated_at`

// GraphStore persists learned causal edges.
type GraphStore struct {
	db *pgxpool.Pool
}

func NewGraphStore(db *pgxpool.Pool) *GraphStore {
	return &GraphStore{db: db}
}

func (s *GraphStore) UpsertEdge(ctx context.Context, edge *domain.CausalEdge) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO causal_edges
		   (source_node_id, target_node_id, source_category, target_category,
		    edge_type, causal_strength, temporal_offset_seconds, confidence)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (source_node_id, target_node_id, edge_type) DO UPDATE
		 SET causal_strength = EXCLUDED.causal_strength,
		     confidence = GREATEST(causal_edges.confidence, EXCLUDED.confidence),
		     temporal_offset_seconds = EXCLUDED.temporal_offset_seconds,
		     updated_at = now()
		 RETURNING id, created_at, updated_at`,
		edge.SourceNodeID, edge.TargetNodeID, edge.SourceCategory, edge.TargetCategory,
		edge.EdgeType, edge.CausalStrength, edge.TemporalOffsetSeconds, edge.Confidence,
	).Scan(&edge.ID, &edge.CreatedAt, &edge.UpdatedAt)
}

func (s *GraphStore) EdgesBySource(ctx context.Context, sourceNodeID string) ([]domain.CausalEdge, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+edgeColumns+` FROM causal_edges WHERE source_node_id = $1
		 ORDER BY causal_strength DESC`,
		sourceNodeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEdges(rows)
}

func (s *GraphStore) EdgesByType(ctx context.Context, edgeType domain.EdgeType) ([]domain.CausalEdge, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+edgeColumns+` FROM causal_edges WHERE edge_type = $1
		 ORDER BY causal_strength DESC`,
		edgeType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEdges(rows)
}

func (s *GraphStore) AllEdges(ctx context.Context) ([]domain.CausalEdge, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+edgeColumns+` FROM causal_edges ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEdges(rows)
}

func (s *GraphStore) CountEdges(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM causal_edges`).Scan(&count)
	return count, err
}

type edgeRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEdges(rows edgeRows) ([]domain.CausalEdge, error) {
	var edges []domain.CausalEdge
	for rows.Next() {
		var e domain.CausalEdge
		if err := rows.Scan(&e.ID, &e.SourceNodeID, &e.TargetNodeID, &e.SourceCategory,
			&e.TargetCategory, &e.EdgeType, &e.CausalStrength, &e.TemporalOffsetSeconds,
			&e.Confidence, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
