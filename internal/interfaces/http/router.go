package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/rdkit-go/internal/interfaces/http/handlers"
	"github.com/turtacn/rdkit-go/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies of the
// route tree.  Nil handlers leave their routes unmounted.
type RouterConfig struct {
	MoleculeHandler *handlers.MoleculeHandler
	HealthHandler   *handlers.HealthHandler

	Logger           logging.Logger
	Logging          middleware.LoggingConfig
	MaxBodySize      int64
	CORSOrigins      []string
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string // default "/metrics"
	HTTPObserver     middleware.HTTPObserver
}

// NewRouter builds the complete route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogging(cfg.Logger, cfg.Logging))
	if cfg.HTTPObserver != nil {
		r.Use(middleware.Metrics(cfg.HTTPObserver))
	}
	r.Use(chimw.Recoverer)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.MaxBodySize(cfg.MaxBodySize))
		registerMoleculeRoutes(api, cfg.MoleculeHandler)
	})

	return r
}

func registerMoleculeRoutes(r chi.Router, h *handlers.MoleculeHandler) {
	if h == nil {
		return
	}
	r.Get("/version", h.Version)

	r.Route("/molecules", func(mr chi.Router) {
		mr.Post("/canonical", h.Canonical)
		mr.Post("/convert", h.Convert)
		mr.Post("/match", h.Match)
		mr.Post("/fingerprint", h.Fingerprint)
		mr.Post("/similarity", h.Similarity)
		mr.Post("/standardize", h.Standardize)
		mr.Post("/fragments", h.Fragments)
		mr.Post("/descriptors", h.Descriptors)
		mr.Post("/depict", h.Depict)
		mr.Post("/batch", h.Batch)
	})

	r.Post("/reactions/depict", h.DepictReaction)
}

//Personal.AI order the ending
