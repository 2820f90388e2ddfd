package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/arjunsehgal/vitalis/internal/domain"
	"github.com/arjunsehgal/vitalis/internal/reasoning"
)

// ReasonHandler handles causal reasoning requests.
type ReasonHandler struct {
	agent  *reasoning.ReActAgent
	logger *zap.Logger
}

// NewReasonHandler creates a new reasoning handler.
func NewReasonHandler(agent *reasoning.ReActAgent, logger *zap.Logger) *ReasonHandler {
	return &ReasonHandler{agent: agent, logger: logger}
}

type reasonRequest struct {
	Symptom string `json:"symptom"`
}

type reasonResponse struct {
	Symptom      string                     `json:"symptom"`
	Explanations []domain.CausalExplanation `json:"explanations"`
}

// Reason handles POST /v1/reason.
func (h *ReasonHandler) Reason(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Symptom = strings.TrimSpace(req.Symptom)
	if req.Symptom == "" {
		writeError(w, http.StatusBadRequest, "symptom is required")
		return
	}

	explanations, err := h.agent.Reason(r.Context(), req.Symptom)
	if err != nil {
		if errors.Is(err, reasoning.ErrDataUnavailable) {
			h.logger.Warn("health data unavailable", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "health data unavailable")
			return
		}
		h.logger.Error("reasoning failed", zap.Error(err), zap.String("symptom", req.Symptom))
		writeError(w, http.StatusInternalServerError, "reasoning failed")
		return
	}

	writeJSON(w, http.StatusOK, reasonResponse{
		Symptom:      req.Symptom,
		Explanations: explanations,
	})
}
