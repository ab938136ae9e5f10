// Package main is the entry point for the skyherald API server.
//
// It loads configuration and the region definition file, builds the
// deterministic weather engine and retrieval service, and serves them over
// the HTTP chassis (middleware, versioned routing, health, metrics).
//
// Graceful shutdown is handled via OS signal interception (SIGINT, SIGTERM).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"skyherald/internal/api/handlers"
	"skyherald/internal/config"
	"skyherald/internal/core"
	"skyherald/internal/engine"
	"skyherald/internal/forecasts"
	"skyherald/internal/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("skyherald API starting",
		"environment", cfg.Environment,
		"service", cfg.Service,
		"port", cfg.Server.Port,
	)

	registry, err := config.LoadRegions(cfg.Regions.Path)
	if err != nil {
		return fmt.Errorf("loading regions from %s: %w", cfg.Regions.Path, err)
	}
	logger.Info("regions loaded", "path", cfg.Regions.Path, "count", registry.Len())

	resolver := engine.NewResolver()
	metrics := observability.NewMetrics()
	weather := forecasts.NewWeatherService(registry, resolver, logger, metrics)

	srv, err := core.NewServer(cfg, logger, metrics)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.HealthProbes = append(srv.HealthProbes, &regionProbe{registry: registry})

	weatherHandler := handlers.NewWeatherHandler(weather, registry, logger, clockwork.NewRealClock())
	srv.V1RouteRegistrars = append(srv.V1RouteRegistrars, weatherHandler.RegisterRoutes)

	srv.MountRoutes()

	return runHTTPServer(srv, cfg, logger)
}

// runHTTPServer starts the server in standard HTTP mode with graceful shutdown.
func runHTTPServer(srv *core.Server, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// regionProbe reports whether the region registry holds at least one region.
// The engine itself is stateless, so a populated registry is the only
// readiness condition the API has.
type regionProbe struct {
	registry *config.Registry
}

func (p *regionProbe) Name() string { return "regions" }

func (p *regionProbe) Check(_ context.Context) error {
	if p.registry.Len() == 0 {
		return fmt.Errorf("region registry is empty")
	}
	return nil
}

var _ core.HealthProbe = (*regionProbe)(nil)

// newLogger creates a structured slog.Logger configured for the given log level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: false,
	})
	return slog.New(handler)
}
