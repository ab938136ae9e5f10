// Package scheduler implements the herald dispatcher: the long-running loop
// that posts the daily weather report for every region at a fixed UTC hour,
// plus a weekly outlook on a configured weekday.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"skyherald/internal/config"
	"skyherald/internal/forecasts"
	"skyherald/internal/notifications/webhook"
	"skyherald/internal/observability"
	"skyherald/internal/types"
)

// DeliveryChannel abstracts the webhook channel for testing.
type DeliveryChannel interface {
	Send(ctx context.Context, msg *webhook.Message, destination string) *types.DeliveryResult
}

// Dispatcher posts weather reports on a fixed schedule. It holds no state
// between runs; a missed run is simply skipped, since any consumer can query
// the API for the same deterministic result.
type Dispatcher struct {
	weather  forecasts.WeatherService
	regions  forecasts.RegionProvider
	channel  DeliveryChannel
	metrics  *observability.Metrics
	logger   *slog.Logger
	clock    clockwork.Clock
	postHour int
	outlook  time.Weekday
}

// DispatcherConfig holds the dependencies for creating a Dispatcher.
type DispatcherConfig struct {
	Weather  forecasts.WeatherService
	Regions  forecasts.RegionProvider
	Channel  DeliveryChannel
	Metrics  *observability.Metrics
	Logger   *slog.Logger
	Clock    clockwork.Clock
	Dispatch config.DispatchConfig
}

// NewDispatcher creates a Dispatcher with the given configuration.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Dispatcher{
		weather:  cfg.Weather,
		regions:  cfg.Regions,
		channel:  cfg.Channel,
		metrics:  cfg.Metrics,
		logger:   logger,
		clock:    clock,
		postHour: cfg.Dispatch.PostHourUTC,
		outlook:  cfg.Dispatch.OutlookWeekday(),
	}
}

// Run blocks until the context is cancelled, executing one dispatch per day
// at the configured UTC hour.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("dispatcher started",
		"post_hour_utc", d.postHour,
		"outlook_day", d.outlook.String(),
	)

	for {
		now := d.clock.Now().UTC()
		next := d.nextRun(now)
		d.logger.Info("next dispatch scheduled", "at", next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			d.logger.Info("dispatcher stopped")
			return ctx.Err()
		case <-d.clock.After(next.Sub(now)):
		}

		if err := d.RunOnce(ctx); err != nil {
			// A failed run is logged and the loop continues; the next day's
			// run is independent.
			d.logger.Error("dispatch run failed", "error", err)
		}
	}
}

// nextRun returns the next occurrence of the post hour strictly after now.
func (d *Dispatcher) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), d.postHour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// RunOnce executes a single dispatch: the daily report for every region, and
// additionally the weekly outlook when today is the configured outlook day.
// Per-region failures are isolated and recorded; they never abort the run.
func (d *Dispatcher) RunOnce(ctx context.Context) error {
	now := d.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if d.metrics != nil {
		d.metrics.DispatchRunning.Set(1)
		defer func() {
			d.metrics.DispatchRunning.Set(0)
			d.metrics.DispatchRuns.Inc()
		}()
	}

	batch, err := d.weather.Batch(ctx, today)
	if err != nil {
		return err
	}

	for regionID, detail := range batch.Errors {
		d.logger.Error("region resolution failed during dispatch",
			"region", regionID,
			"code", detail.Code,
			"error", detail.Message,
		)
		if d.metrics != nil {
			d.metrics.BatchRegionErrors.Inc()
		}
	}

	withOutlook := today.Weekday() == d.outlook

	for _, region := range d.regions.All() {
		result, ok := batch.Results[region.ID]
		if !ok {
			continue
		}

		d.deliver(ctx, region, &webhook.Message{
			RegionName: region.DisplayName(),
			Kind:       webhook.KindDaily,
			Days:       []*types.WeatherResult{result},
		})

		if withOutlook {
			days, err := d.weather.Week(ctx, region.ID, today)
			if err != nil {
				d.logger.Error("outlook resolution failed",
					"region", region.ID,
					"error", err,
				)
				continue
			}
			d.deliver(ctx, region, &webhook.Message{
				RegionName: region.DisplayName(),
				Kind:       webhook.KindOutlook,
				Days:       days,
			})
		}
	}

	d.logger.Info("dispatch run complete",
		"date", today.Format("2006-01-02"),
		"regions", len(batch.Results),
		"failed_regions", len(batch.Errors),
		"outlook", withOutlook,
	)
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, region types.Region, msg *webhook.Message) {
	result := d.channel.Send(ctx, msg, region.WebhookURL)

	if d.metrics != nil {
		d.metrics.Deliveries.WithLabelValues(platformLabel(region.WebhookURL), string(result.Kind)).Inc()
		if result.Kind != types.DeliverySkipped {
			d.metrics.DeliveryDuration.WithLabelValues(platformLabel(region.WebhookURL)).Observe(result.Duration.Seconds())
		}
	}

	switch result.Kind {
	case types.DeliverySkipped:
		d.logger.Debug("delivery skipped, region has no webhook",
			"region", region.ID,
			"kind", string(msg.Kind),
		)
	case types.DeliveryFailure:
		d.logger.Error("delivery failed",
			"region", region.ID,
			"kind", string(msg.Kind),
			"delivery_id", result.DeliveryID,
			"error", result.Err,
		)
	}
}

var detectRegistry = webhook.NewPlatformRegistry()

// platformLabel reuses the webhook platform detection for metric labels.
func platformLabel(url string) string {
	if url == "" {
		return "none"
	}
	return string(detectRegistry.Detect(url))
}
