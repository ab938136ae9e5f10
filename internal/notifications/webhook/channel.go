// Package webhook implements the outbound delivery channel for weather
// reports. It handles platform auto-detection (Slack, Teams, Discord, Google
// Chat), payload formatting using platform-specific JSON schemas, HMAC
// signing, and HTTP delivery with circuit breaking and retries.
package webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker/v2"

	"skyherald/internal/config"
	"skyherald/internal/types"
)

// maxResponseBodyRead limits how much of a response body is read for error
// reporting and soft-failure detection.
const maxResponseBodyRead = 4096

// retryMinWait and retryMaxWait bound the exponential backoff between
// delivery attempts.
const (
	retryMinWait = 500 * time.Millisecond
	retryMaxWait = 10 * time.Second
)

// Channel delivers formatted weather reports over HTTP POST. All outbound
// calls go through a shared circuit breaker; consecutive failures against
// flaky endpoints stop burning the dispatch window on timeouts.
type Channel struct {
	registry   *PlatformRegistry
	signer     *SignatureManager
	httpClient *http.Client
	cfg        config.WebhookConfig
	logger     *slog.Logger
	clock      clockwork.Clock
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	sleepFn    func(time.Duration)
}

// ChannelOption is a functional option for configuring a Channel.
type ChannelOption func(*Channel)

// WithHTTPClient overrides the HTTP client, primarily for tests against
// httptest servers.
func WithHTTPClient(client *http.Client) ChannelOption {
	return func(c *Channel) {
		c.httpClient = client
	}
}

// WithClock overrides the clock used for signing timestamps and latency
// measurement.
func WithClock(clock clockwork.Clock) ChannelOption {
	return func(c *Channel) {
		c.clock = clock
	}
}

// WithSleepFunc overrides the sleep function used between retries.
func WithSleepFunc(fn func(time.Duration)) ChannelOption {
	return func(c *Channel) {
		c.sleepFn = fn
	}
}

// NewChannel creates a delivery Channel from webhook configuration.
func NewChannel(cfg config.WebhookConfig, logger *slog.Logger, opts ...ChannelOption) *Channel {
	if logger == nil {
		logger = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "webhook-delivery",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	})

	c := &Channel{
		registry:   NewPlatformRegistry(),
		signer:     NewSignatureManager(),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
		clock:      clockwork.NewRealClock(),
		breaker:    cb,
		sleepFn:    time.Sleep,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Send formats and delivers a weather report to the destination URL. It
// never returns an error: the outcome, including failures, is captured in
// the DeliveryResult so callers can log and count without branching.
func (c *Channel) Send(ctx context.Context, msg *Message, destination string) *types.DeliveryResult {
	deliveryID := uuid.New().String()

	if destination == "" {
		return &types.DeliveryResult{
			DeliveryID: deliveryID,
			Kind:       types.DeliverySkipped,
		}
	}

	platform := c.registry.Detect(destination)
	formatter := c.registry.Get(platform)

	payload, err := formatter.Format(ctx, msg)
	if err != nil {
		return &types.DeliveryResult{
			DeliveryID: deliveryID,
			Kind:       types.DeliveryFailure,
			Err:        types.NewAppError(types.ErrCodeInternalUnexpected, "payload formatting failed", err),
		}
	}

	started := c.clock.Now()
	statusCode, err := c.post(ctx, payload, destination, formatter)
	elapsed := c.clock.Since(started)

	if err != nil {
		c.logger.WarnContext(ctx, "webhook delivery failed",
			"delivery_id", deliveryID,
			"platform", string(platform),
			"status", statusCode,
			"error", err,
		)
		return &types.DeliveryResult{
			DeliveryID: deliveryID,
			Kind:       types.DeliveryFailure,
			StatusCode: statusCode,
			Duration:   elapsed,
			Err:        err,
		}
	}

	c.logger.InfoContext(ctx, "webhook delivered",
		"delivery_id", deliveryID,
		"platform", string(platform),
		"status", statusCode,
		"duration_ms", elapsed.Milliseconds(),
	)
	return &types.DeliveryResult{
		DeliveryID: deliveryID,
		Kind:       types.DeliverySuccess,
		StatusCode: statusCode,
		Duration:   elapsed,
	}
}

// post executes the HTTP POST through the circuit breaker, retrying 429 and
// 5xx responses with exponential backoff. It returns the final status code
// and a mapped error on failure.
func (c *Channel) post(ctx context.Context, payload []byte, destination string, formatter PlatformFormatter) (int, error) {
	var lastStatus int
	var lastErr error

	maxAttempts := 1 + c.cfg.MaxRetries
	for attempt := 0; attempt < maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination, bytes.NewReader(payload))
		if err != nil {
			return 0, types.NewAppError(types.ErrCodeInternalUnexpected, "failed to create webhook request", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", c.cfg.UserAgent)
		if reqID := types.GetRequestID(ctx); reqID != "" {
			req.Header.Set("X-Request-Id", reqID)
		}
		if c.cfg.SigningSecret != "" {
			sig, err := c.signer.SignPayload(payload, c.cfg.SigningSecret, c.clock.Now())
			if err != nil {
				return 0, types.NewAppError(types.ErrCodeInternalUnexpected, "failed to sign webhook payload", err)
			}
			req.Header.Set(SignatureHeader, sig)
		}

		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			r, doErr := c.httpClient.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			// 5xx and 429 count as failures for the breaker.
			if r.StatusCode >= 500 || r.StatusCode == http.StatusTooManyRequests {
				return r, fmt.Errorf("upstream returned %d", r.StatusCode)
			}
			return r, nil
		})

		if err == nil {
			// 2xx/3xx/4xx (not 429). Soft failures still fail the delivery.
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyRead))
			resp.Body.Close()
			lastStatus = resp.StatusCode

			if vErr := formatter.ValidateResponse(resp.StatusCode, body); vErr != nil {
				return lastStatus, types.NewAppError(types.ErrCodeUpstreamWebhook, "webhook rejected payload", vErr)
			}
			return lastStatus, nil
		}

		lastErr = err
		var retryAfter string
		if resp != nil {
			lastStatus = resp.StatusCode
			retryAfter = resp.Header.Get("Retry-After")
			resp.Body.Close()
		}

		// An open breaker means the endpoint is already known-bad; retrying
		// inside this delivery cannot help.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}

		if attempt < maxAttempts-1 {
			c.sleepFn(c.computeBackoff(attempt, retryAfter))
		}
	}

	if errors.Is(lastErr, gobreaker.ErrOpenState) || errors.Is(lastErr, gobreaker.ErrTooManyRequests) {
		return lastStatus, types.NewAppError(types.ErrCodeUpstreamWebhook, "webhook circuit breaker is open", lastErr)
	}
	return lastStatus, types.NewAppError(types.ErrCodeUpstreamWebhook,
		fmt.Sprintf("webhook delivery failed after %d attempts", maxAttempts), lastErr)
}

// computeBackoff determines the wait before the next attempt. It respects a
// Retry-After header when present, otherwise uses exponential backoff with
// full jitter clamped to [retryMinWait, retryMaxWait].
func (c *Channel) computeBackoff(attempt int, retryAfter string) time.Duration {
	if retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
			wait := time.Duration(seconds) * time.Second
			if wait > retryMaxWait {
				wait = retryMaxWait
			}
			return wait
		}
	}

	base := float64(retryMinWait) * math.Pow(2, float64(attempt))
	if base > float64(retryMaxWait) {
		base = float64(retryMaxWait)
	}

	minWait := float64(retryMinWait)
	if base <= minWait {
		return retryMinWait
	}
	return time.Duration(minWait + rand.Float64()*(base-minWait))
}
