package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Dependency is an upstream checked by /v1/ping.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

// Routes collects what the API server mounts.
type Routes struct {
	Questions    *question.HTTPHandler
	Registry     *prometheus.Registry
	Dependencies []Dependency
}

// NewHandler builds the API mux (health, metrics, ping, trivia routes)
// wrapped in CORS and request instrumentation.
func NewHandler(cfg *config.App, logger zerolog.Logger, routes Routes) http.Handler {
	logger = logger.With().Str("component", "http_server").Logger()

	registry := routes.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	metrics := NewMetrics(registry)

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), routes.Dependencies); err != nil {
			reqLogger := logging.FromContext(r.Context())
			reqLogger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondBadGateway(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if routes.Questions != nil {
		routes.Questions.Register(mux)
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})

	return withCORS(cfg.CORS, instrument(logger, metrics, mux))
}

// NewHTTPServer wraps handler in an http.Server bound to the configured address.
func NewHTTPServer(cfg *config.App, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func pingDependencies(ctx context.Context, deps []Dependency) error {
	for _, dep := range deps {
		if err := dep.Ping(ctx); err != nil {
			return fmt.Errorf("ping %s: %w", dep.Name, err)
		}
	}
	return nil
}
