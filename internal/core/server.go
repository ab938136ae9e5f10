// Package core provides the API chassis for skyherald. It builds a chi
// router and enforces cross-cutting concerns -- panic recovery, request
// correlation, logging, and metrics -- before requests reach domain handlers.
package core

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skyherald/internal/config"
	"skyherald/internal/observability"
)

// Server encapsulates all dependencies for the skyherald API, allowing for
// easy injection during testing.
type Server struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics

	// HealthProbes are checked by GET /health. Optional.
	HealthProbes []HealthProbe

	// V1RouteRegistrars are invoked when mounting /v1 routes. Populated by the
	// application entry point; the indirection avoids import cycles between
	// core and handler packages.
	V1RouteRegistrars []func(chi.Router)

	router *chi.Mux
}

// NewServer initializes the router and prepares the server for route
// mounting. The caller is responsible for appending route registrars and
// calling MountRoutes after construction.
func NewServer(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	return &Server{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		router:  chi.NewRouter(),
	}, nil
}

// Handler returns the http.Handler interface for the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the underlying chi.Mux for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}
