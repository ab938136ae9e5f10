// Package observability holds the Prometheus instrumentation shared by the
// API server and the herald dispatcher.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for skyherald.
type Metrics struct {
	// HTTP API metrics.
	HTTPRequests        *prometheus.CounterVec   // labels: route, method, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: route

	// Weather resolution metrics.
	Resolutions       *prometheus.CounterVec // labels: outcome={success,error}
	ResolutionDays    prometheus.Histogram
	BatchRegionErrors prometheus.Counter

	// Webhook delivery metrics.
	Deliveries       *prometheus.CounterVec   // labels: platform, outcome={success,failure,skipped}
	DeliveryDuration *prometheus.HistogramVec // labels: platform

	// Dispatcher metrics.
	DispatchRuns    prometheus.Counter
	DispatchRunning prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.Resolutions,
		m.ResolutionDays,
		m.BatchRegionErrors,
		m.Deliveries,
		m.DeliveryDuration,
		m.DispatchRuns,
		m.DispatchRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skyherald",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "skyherald",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"route"}),
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skyherald",
			Name:      "resolutions_total",
			Help:      "Weather resolutions by outcome.",
		}, []string{"outcome"}),
		ResolutionDays: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "skyherald",
			Name:      "resolution_day_number",
			Help:      "Days since the timeline anchor of resolved dates; a proxy for continuity walk depth.",
			Buckets:   []float64{365, 3650, 9125, 18250, 21900, 25550, 36500},
		}),
		BatchRegionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skyherald",
			Name:      "batch_region_errors_total",
			Help:      "Regions that failed to resolve during a batch run.",
		}),
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skyherald",
			Name:      "webhook_deliveries_total",
			Help:      "Webhook deliveries by platform and outcome.",
		}, []string{"platform", "outcome"}),
		DeliveryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "skyherald",
			Name:      "webhook_delivery_duration_seconds",
			Help:      "Webhook delivery duration by platform.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"platform"}),
		DispatchRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skyherald",
			Name:      "dispatch_runs_total",
			Help:      "Completed dispatch runs.",
		}),
		DispatchRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "skyherald",
			Name:      "dispatch_running",
			Help:      "1 while a dispatch run is in progress, 0 otherwise.",
		}),
	}
}
