// Package main is the entry point for the skyherald dispatcher daemon.
//
// The herald wakes once per day at the configured UTC hour, resolves the
// day's weather for every region in the registry, and posts the reports to
// each region's webhook. On the configured outlook day it additionally posts
// a seven day outlook. It holds no state between runs; a missed run is
// skipped, since the API serves the same deterministic result on demand.
//
// The -once flag executes a single dispatch immediately and exits, which is
// useful for testing webhook wiring and for cron-driven deployments.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"skyherald/internal/config"
	"skyherald/internal/engine"
	"skyherald/internal/forecasts"
	"skyherald/internal/notifications/webhook"
	"skyherald/internal/observability"
	"skyherald/internal/scheduler"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	once := flag.Bool("once", false, "run a single dispatch immediately and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("skyherald herald starting",
		"environment", cfg.Environment,
		"post_hour_utc", cfg.Dispatch.PostHourUTC,
		"outlook_day", cfg.Dispatch.OutlookDay,
	)

	registry, err := config.LoadRegions(cfg.Regions.Path)
	if err != nil {
		return fmt.Errorf("loading regions from %s: %w", cfg.Regions.Path, err)
	}
	logger.Info("regions loaded", "path", cfg.Regions.Path, "count", registry.Len())

	resolver := engine.NewResolver()
	metrics := observability.NewMetrics()
	weather := forecasts.NewWeatherService(registry, resolver, logger, metrics)
	channel := webhook.NewChannel(cfg.Webhook, logger)

	dispatcher := scheduler.NewDispatcher(scheduler.DispatcherConfig{
		Weather:  weather,
		Regions:  registry,
		Channel:  channel,
		Metrics:  metrics,
		Logger:   logger,
		Dispatch: cfg.Dispatch,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		logger.Info("running single dispatch")
		return dispatcher.RunOnce(ctx)
	}

	if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("dispatcher: %w", err)
	}

	logger.Info("herald stopped cleanly")
	return nil
}

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
