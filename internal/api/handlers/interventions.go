package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/arjunsehgal/vitalis/internal/domain"
	"github.com/arjunsehgal/vitalis/internal/reasoning"
)

// InterventionHandler handles counterfactual intervention requests.
type InterventionHandler struct {
	calculator *reasoning.InterventionCalculator
	logger     *zap.Logger
}

// NewInterventionHandler creates a new intervention handler.
func NewInterventionHandler(calculator *reasoning.InterventionCalculator, logger *zap.Logger) *InterventionHandler {
	return &InterventionHandler{calculator: calculator, logger: logger}
}

type nodeInterventionRequest struct {
	NodeID string `json:"node_id"`
}

type symptomInterventionRequest struct {
	Symptom      string                     `json:"symptom"`
	Explanations []domain.CausalExplanation `json:"explanations"`
}

type interventionResponse struct {
	Counterfactuals []domain.Counterfactual `json:"counterfactuals"`
}

// ForNode handles POST /v1/interventions/node.
func (h *InterventionHandler) ForNode(w http.ResponseWriter, r *http.Request) {
	var req nodeInterventionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.NodeID = strings.TrimSpace(req.NodeID)
	if req.NodeID == "" {
		writeError(w, http.StatusBadRequest, "node_id is required")
		return
	}

	counterfactuals := h.calculator.ForNode(req.NodeID)
	writeJSON(w, http.StatusOK, interventionResponse{Counterfactuals: counterfactuals})
}

// ForSymptom handles POST /v1/interventions/symptom.
func (h *InterventionHandler) ForSymptom(w http.ResponseWriter, r *http.Request) {
	var req symptomInterventionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Symptom) == "" {
		writeError(w, http.StatusBadRequest, "symptom is required")
		return
	}

	counterfactuals := h.calculator.ForSymptom(req.Symptom, req.Explanations)
	writeJSON(w, http.StatusOK, interventionResponse{Counterfactuals: counterfactuals})
}
