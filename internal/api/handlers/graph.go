package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/arjunsehgal/vitalis/internal/domain"
	"github.com/arjunsehgal/vitalis/internal/reasoning"
)

// GraphHandler exposes the causal graph for inspection.
type GraphHandler struct {
	graph  domain.GraphStore
	logger *zap.Logger
}

// NewGraphHandler creates a new graph handler.
func NewGraphHandler(graph domain.GraphStore, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{graph: graph, logger: logger}
}

type causalPath struct {
	Nodes    []domain.NodeCategory `json:"nodes"`
	Strength float64               `json:"strength"`
}

type pathsResponse struct {
	From  domain.NodeCategory `json:"from"`
	Paths []causalPath        `json:"paths"`
}

// Paths handles GET /v1/graph/paths. The from query parameter names the
// starting node category; paths always terminate at the symptom category.
func (h *GraphHandler) Paths(w http.ResponseWriter, r *http.Request) {
	from := domain.NodeCategory(strings.TrimSpace(r.URL.Query().Get("from")))
	if from == "" {
		writeError(w, http.StatusBadRequest, "from query parameter is required")
		return
	}
	if !domain.ValidNodeCategory(string(from)) {
		writeError(w, http.StatusBadRequest, "unknown node category")
		return
	}

	edges, err := h.graph.AllEdges(r.Context())
	if err != nil {
		h.logger.Error("failed to load causal edges", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load causal graph")
		return
	}

	dag := reasoning.NewCausalDAG(edges)
	paths := make([]causalPath, 0)
	for _, nodes := range dag.TracePaths(from) {
		paths = append(paths, causalPath{
			Nodes:    nodes,
			Strength: dag.PathStrength(nodes),
		})
	}

	writeJSON(w, http.StatusOK, pathsResponse{From: from, Paths: paths})
}
