package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/arjunsehgal/vitalis/internal/api/handlers"
	mw "github.com/arjunsehgal/vitalis/internal/api/middleware"
	"github.com/arjunsehgal/vitalis/internal/config"
	"github.com/arjunsehgal/vitalis/internal/domain"
	"github.com/arjunsehgal/vitalis/internal/embedding"
	"github.com/arjunsehgal/vitalis/internal/llm"
	"github.com/arjunsehgal/vitalis/internal/reasoning"
	"github.com/arjunsehgal/vitalis/internal/store"
)

// App holds the router and request metrics for lifecycle management.
type App struct {
	Router       *chi.Mux
	Learner      *reasoning.LearnerScheduler
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	// Stores
	healthStore := store.NewHealthStore(db)
	graphStore := store.NewGraphStore(db)
	sessionStore := store.NewSessionStore(db)

	// External clients via provider factory
	narrativeProvider := config.NarrativeProvider()
	embeddingProvider := config.EmbeddingProvider()

	narrativeClient, err := llm.NewClient(narrativeProvider, config.NarrativeAPIKey())
	if err != nil {
		logger.Warn("narrative client initialization failed, using mock",
			zap.String("provider", narrativeProvider), zap.Error(err))
		narrativeClient = llm.NewMockClient()
	} else {
		logger.Info("narrative client initialized", zap.String("provider", narrativeProvider))
	}

	embeddingClient, err := embedding.NewClient(embeddingProvider, config.EmbeddingAPIKey())
	if err != nil {
		logger.Warn("embedding client initialization failed, using mock",
			zap.String("provider", embeddingProvider), zap.Error(err))
		embeddingClient = embedding.NewMockClient()
	} else {
		logger.Info("embedding client initialized", zap.String("provider", embeddingProvider))
	}

	// Reasoning components
	registry := reasoning.NewToolRegistry(reasoning.NewDigitalFrictionTool())
	ruleEngine := reasoning.NewStaticRuleEngine()
	phaseTracker := reasoning.NewGraphPhaseTracker(graphStore)
	classifier := reasoning.NewEvidenceClassifier()

	agent := reasoning.NewReActAgent(healthStore, registry, ruleEngine, narrativeClient, phaseTracker, classifier, logger)
	agent.SetSessionStore(sessionStore, embeddingClient)

	learner := reasoning.NewEdgeWeightLearner(graphStore, healthStore, logger)
	calculator := reasoning.NewInterventionCalculator()

	// Handlers
	reasonHandler := handlers.NewReasonHandler(agent, logger)
	interventionHandler := handlers.NewInterventionHandler(calculator, logger)
	learningHandler := handlers.NewLearningHandler(learner, logger)
	graphHandler := handlers.NewGraphHandler(graphStore, logger)
	sessionHandler := handlers.NewSessionHandler(sessionStore, embeddingClient, logger)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Learner:   reasoning.NewLearnerScheduler(learner, logger),
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health (no auth)
	r.Get("/health", healthHandler(db))

	// Metrics (no auth)
	r.Get("/metrics", app.metricsHandler())

	// Authenticated routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(config.APIKey()))

		r.Post("/reason", reasonHandler.Reason)

		r.Route("/interventions", func(r chi.Router) {
			r.Post("/node", interventionHandler.ForNode)
			r.Post("/symptom", interventionHandler.ForSymptom)
		})

		r.Post("/learning/batch", learningHandler.BatchUpdate)

		r.Get("/graph/paths", graphHandler.Paths)

		r.Get("/sessions/similar", sessionHandler.Similar)
	})

	return app
}

// NewRouter returns just the chi.Mux.
func NewRouter(db *pgxpool.Pool, logger *zap.Logger) *chi.Mux {
	return NewApp(db, logger).Router
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.HealthStore        = (*store.HealthStore)(nil)
	_ domain.GraphStore         = (*store.GraphStore)(nil)
	_ domain.SessionStore       = (*store.SessionStore)(nil)
	_ domain.EmbeddingClient    = (*embedding.OpenAIClient)(nil)
	_ domain.EmbeddingClient    = (*embedding.MockClient)(nil)
	_ domain.NarrativeGenerator = (*llm.OpenAIClient)(nil)
	_ domain.NarrativeGenerator = (*llm.AnthropicClient)(nil)
	_ domain.NarrativeGenerator = (*llm.MockClient)(nil)
	_ domain.AnalysisTool       = (*reasoning.DigitalFrictionTool)(nil)
	_ domain.ToolRegistry       = (*reasoning.ToolRegistry)(nil)
	_ domain.RuleEngine         = (*reasoning.StaticRuleEngine)(nil)
	_ domain.PhaseTracker       = (*reasoning.GraphPhaseTracker)(nil)
	_ domain.PhaseTracker       = (*reasoning.StaticPhaseTracker)(nil)
	_ domain.DebtClassifier     = (*reasoning.EvidenceClassifier)(nil)
)
