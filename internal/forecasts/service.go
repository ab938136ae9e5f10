// Package forecasts implements the weather retrieval service for skyherald.
//
// It sits between the transport layers (HTTP API, the herald dispatcher) and
// the deterministic engine: it owns region lookup, multi-day fan-out and the
// scatter/gather batch path used by the daily dispatch run.
package forecasts

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"skyherald/internal/observability"
	"skyherald/internal/types"
)

const (
	// OutlookDays is the number of days in a weekly outlook, starting at and
	// including the requested start date.
	OutlookDays = 7

	// BatchConcurrencyLimit caps concurrent per-region resolution during a
	// batch run. Resolution is CPU-bound, so the limit mostly bounds memo
	// lock contention.
	BatchConcurrencyLimit = 8
)

// BatchResult separates per-region successes from failures. A failed region
// never aborts the run; its error lands in Errors keyed by region ID.
type BatchResult struct {
	Results map[string]*types.WeatherResult `json:"results"`
	Errors  map[string]ErrorDetail          `json:"errors,omitempty"`
}

// ErrorDetail is a lightweight error structure used in batch error maps.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RegionProvider supplies region definitions. Implemented by config.Registry.
type RegionProvider interface {
	Get(id string) (types.Region, bool)
	All() []types.Region
}

// WeatherResolver computes a single day's weather for a region.
// Implemented by engine.Resolver.
type WeatherResolver interface {
	Resolve(date time.Time, regionID string, cfg types.SeasonalConfig) (*types.WeatherResult, error)
}

// WeatherService defines the business logic interface for weather retrieval.
type WeatherService interface {
	Daily(ctx context.Context, regionID string, date time.Time) (*types.WeatherResult, error)
	Week(ctx context.Context, regionID string, start time.Time) ([]*types.WeatherResult, error)
	Batch(ctx context.Context, date time.Time) (*BatchResult, error)
}

// weatherService is the concrete implementation of WeatherService.
type weatherService struct {
	regions  RegionProvider
	resolver WeatherResolver
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewWeatherService creates a WeatherService with the provided dependencies.
// metrics may be nil for callers without an instrumentation surface.
func NewWeatherService(regions RegionProvider, resolver WeatherResolver, logger *slog.Logger, metrics *observability.Metrics) WeatherService {
	if logger == nil {
		logger = slog.Default()
	}
	return &weatherService{
		regions:  regions,
		resolver: resolver,
		logger:   logger,
		metrics:  metrics,
	}
}

// resolve wraps the engine call with resolution instrumentation. The day
// number observed is days since the timeline anchor, which tracks how far
// the continuity walk had to go on a cold memo.
func (s *weatherService) resolve(date time.Time, region types.Region) (*types.WeatherResult, error) {
	result, err := s.resolver.Resolve(date, region.ID, region.Seasons)
	if s.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		s.metrics.Resolutions.WithLabelValues(outcome).Inc()
		if err == nil {
			s.metrics.ResolutionDays.Observe(float64(date.Unix() / 86400))
		}
	}
	return result, err
}

// Daily resolves the weather for one region on one calendar date.
func (s *weatherService) Daily(ctx context.Context, regionID string, date time.Time) (*types.WeatherResult, error) {
	region, ok := s.regions.Get(regionID)
	if !ok {
		return nil, &types.AppError{
			Code:    types.ErrCodeNotFoundRegion,
			Message: fmt.Sprintf("unknown region %q", regionID),
		}
	}

	result, err := s.resolve(date, region)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "resolved daily weather",
		"region", region.ID,
		"date", result.Date,
		"condition", result.Condition,
	)
	return result, nil
}

// Week resolves a 7-day outlook starting at the given date. The days are
// resolved sequentially: each day after the first reuses the memoized epoch
// walk of its predecessor, so fan-out buys nothing here.
func (s *weatherService) Week(ctx context.Context, regionID string, start time.Time) ([]*types.WeatherResult, error) {
	region, ok := s.regions.Get(regionID)
	if !ok {
		return nil, &types.AppError{
			Code:    types.ErrCodeNotFoundRegion,
			Message: fmt.Sprintf("unknown region %q", regionID),
		}
	}

	results := make([]*types.WeatherResult, 0, OutlookDays)
	for i := 0; i < OutlookDays; i++ {
		result, err := s.resolve(start.AddDate(0, 0, i), region)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// Batch resolves the given date for every registered region concurrently.
// Per-region failures are isolated: a region with a broken seasonal table
// reports an error entry while the rest of the campaign still gets weather.
func (s *weatherService) Batch(ctx context.Context, date time.Time) (*BatchResult, error) {
	regions := s.regions.All()
	if len(regions) == 0 {
		return &BatchResult{Results: make(map[string]*types.WeatherResult)}, nil
	}

	var mu sync.Mutex
	results := make(map[string]*types.WeatherResult, len(regions))
	errorMap := make(map[string]ErrorDetail)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(BatchConcurrencyLimit)

	for _, region := range regions {
		region := region

		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			result, err := s.resolve(date, region)
			if err != nil {
				s.logger.WarnContext(gCtx, "region resolution failed",
					"region", region.ID,
					"error", err,
				)
				mu.Lock()
				errorMap[region.ID] = errorDetailFrom(err)
				mu.Unlock()
				// Do not propagate; other regions should still resolve.
				return nil
			}

			mu.Lock()
			results[region.ID] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, &types.AppError{
			Code:    types.ErrCodeInternalUnexpected,
			Message: fmt.Sprintf("batch resolution error: %v", err),
			Err:     err,
		}
	}

	out := &BatchResult{Results: results}
	if len(errorMap) > 0 {
		out.Errors = errorMap
	}
	return out, nil
}

func errorDetailFrom(err error) ErrorDetail {
	if appErr, ok := err.(*types.AppError); ok {
		return ErrorDetail{Code: string(appErr.Code), Message: appErr.Message}
	}
	return ErrorDetail{Code: string(types.ErrCodeInternalUnexpected), Message: err.Error()}
}
