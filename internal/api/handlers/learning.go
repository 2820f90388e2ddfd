package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/arjunsehgal/vitalis/internal/domain"
	"github.com/arjunsehgal/vitalis/internal/reasoning"
)

const defaultBatchWindowHours = 24

// LearningHandler handles edge weight learning requests.
type LearningHandler struct {
	learner *reasoning.EdgeWeightLearner
	logger  *zap.Logger
}

// NewLearningHandler creates a new learning handler.
func NewLearningHandler(learner *reasoning.EdgeWeightLearner, logger *zap.Logger) *LearningHandler {
	return &LearningHandler{learner: learner, logger: logger}
}

type batchUpdateRequest struct {
	Hours int `json:"hours"`
}

// BatchUpdate handles POST /v1/learning/batch.
func (h *LearningHandler) BatchUpdate(w http.ResponseWriter, r *http.Request) {
	req := batchUpdateRequest{Hours: defaultBatchWindowHours}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if req.Hours <= 0 || req.Hours > 24*30 {
		writeError(w, http.StatusBadRequest, "hours must be between 1 and 720")
		return
	}

	window := domain.WindowEnding(time.Now().UTC(), time.Duration(req.Hours)*time.Hour)
	report, err := h.learner.BatchUpdate(r.Context(), window)
	if err != nil {
		h.logger.Error("batch update failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "batch update failed")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
