// Package server exposes the analysis service over a JSON HTTP API.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sells-group/bizhealth/internal/analysis"
	"github.com/sells-group/bizhealth/internal/config"
	"github.com/sells-group/bizhealth/internal/monitoring"
	"github.com/sells-group/bizhealth/internal/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	svc       *analysis.Service
	store     store.Store
	collector *monitoring.Collector
	metrics   *monitoring.Metrics
	cfg       config.ServerConfig
	lookback  int
	report    config.ReportConfig
	now       func() time.Time
}

// New creates a Server. metrics may be nil, in which case /metrics is not
// mounted and request timing is skipped.
func New(svc *analysis.Service, metrics *monitoring.Metrics, cfg *config.Config) *Server {
	return &Server{
		svc:       svc,
		store:     svc.Store(),
		collector: monitoring.NewCollector(svc.Store()),
		metrics:   metrics,
		cfg:       cfg.Server,
		lookback:  cfg.Monitoring.LookbackWindowHours,
		report:    cfg.Report,
		now:       time.Now,
	}
}

// Handler builds the chi router with the middleware chain.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id", "Content-Disposition"},
		MaxAge:         300,
	}))
	if s.metrics != nil {
		r.Use(timing(s.metrics))
	}
	r.Use(rateLimit(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst))

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/analyses", func(r chi.Router) {
			r.Post("/", s.handleCreateAnalysis)
			r.Get("/", s.handleListAnalyses)
			r.Delete("/", s.handleClearHistory)
			r.Get("/current", s.handleCurrentAnalysis)
			r.Delete("/current", s.handleClearCurrent)
			r.Get("/{id}", s.handleGetAnalysis)
			r.Delete("/{id}", s.handleDeleteAnalysis)
			r.Get("/{id}/report", s.handleReport)
		})
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
		r.Delete("/settings", s.handleResetSettings)
		r.Get("/benchmarks", s.handleBenchmarks)
		r.Get("/stats", s.handleStats)
		r.Get("/export", s.handleExport)
	})

	return r
}
