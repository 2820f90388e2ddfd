package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

const (
	defaultSimilarLimit = 5
	maxSimilarLimit     = 20
)

// SessionHandler handles reasoning session recall.
type SessionHandler struct {
	sessions domain.SessionStore
	embedder domain.EmbeddingClient
	logger   *zap.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions domain.SessionStore, embedder domain.EmbeddingClient, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, embedder: embedder, logger: logger}
}

type similarResponse struct {
	Sessions []domain.SessionWithScore `json:"sessions"`
}

// Similar handles GET /v1/sessions/similar. It embeds the symptom text and
// returns past sessions ranked by cosine similarity.
func (h *SessionHandler) Similar(w http.ResponseWriter, r *http.Request) {
	symptom := strings.TrimSpace(r.URL.Query().Get("symptom"))
	if symptom == "" {
		writeError(w, http.StatusBadRequest, "symptom query parameter is required")
		return
	}

	limit := defaultSimilarLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxSimilarLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 20")
			return
		}
		limit = parsed
	}

	embedding, err := h.embedder.Embed(r.Context(), symptom)
	if err != nil {
		h.logger.Error("failed to embed symptom", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to embed symptom")
		return
	}

	sessions, err := h.sessions.FindSimilar(r.Context(), embedding, limit)
	if err != nil {
		h.logger.Error("failed to find similar sessions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to find similar sessions")
		return
	}

	writeJSON(w, http.StatusOK, similarResponse{Sessions: sessions})
}
