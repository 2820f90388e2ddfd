package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arjunsehgal/vitalis/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
)

// SessionStore persists completed reasoning sessions, with a symptom
// embedding for similarity recall.
type SessionStore struct {
	db *pgxpool.Pool
}

func NewSessionStore(db *pgxpool.Pool) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(ctx context.Context, session *domain.ReasoningSession) error {
	explanations, err := json.Marshal(session.Explanations)
	if err != nil {
		return fmt.Errorf("marshal explanations: %w", err)
	}

	var embedding *pgvector.Vector
	if len(session.Embedding) > 0 {
		v := pgvector.NewVector(session.Embedding)
		embedding = &v
	}

	return s.db.QueryRow(ctx,
		`INSERT INTO reasoning_sessions (symptom, explanations, embedding)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		session.Symptom, explanations, embedding,
	).Scan(&session.ID, &session.CreatedAt)
}

func (s *SessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReasoningSession, error) {
	session := &domain.ReasoningSession{}
	var explanations []byte
	err := s.db.QueryRow(ctx,
		`SELECT id, symptom, explanations, created_at FROM reasoning_sessions WHERE id = $1`,
		id,
	).Scan(&session.ID, &session.Symptom, &explanations, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(explanations, &session.Explanations); err != nil {
		return nil, fmt.Errorf("unmarshal explanations: %w", err)
	}
	return session, nil
}

func (s *SessionStore) FindSimilar(ctx context.Context, embedding []float32, limit int) ([]domain.SessionWithScore, error) {
	if limit <= 0 {
		limit = 5
	}
	vec := pgvector.NewVector(embedding)

	rows, err := s.db.Query(ctx,
		`SELECT id, symptom, explanations, created_at, 1 - (embedding <=> $1) AS score
		 FROM reasoning_sessions
		 WHERE embedding IS NOT NULL
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		vec, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.SessionWithScore
	for rows.Next() {
		var sess domain.SessionWithScore
		var explanations []byte
		if err := rows.Scan(&sess.ID, &sess.Symptom, &explanations, &sess.CreatedAt, &sess.Score); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(explanations, &sess.Explanations); err != nil {
			return nil, fmt.Errorf("unmarshal explanations: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
