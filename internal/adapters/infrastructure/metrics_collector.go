package infrastructure

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetricsCollector implements the MetricsCollector port
type PrometheusMetricsCollector struct {
	fetches       *prometheus.CounterVec
	fetchLatency  *prometheus.HistogramVec
	cacheRequests *prometheus.CounterVec
	runs          *prometheus.CounterVec
}

// NewPrometheusMetricsCollector registers the collectors on reg. Registering
// twice on the same registerer panics, so build one collector per registry.
func NewPrometheusMetricsCollector(reg prometheus.Registerer) *PrometheusMetricsCollector {
	factory := promauto.With(reg)
	return &PrometheusMetricsCollector{
		fetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_provider_fetch_total",
				Help: "The total number of provider fetches by outcome",
			},
			[]string{"provider", "status"},
		),
		fetchLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "weather_provider_fetch_duration_seconds",
				Help:    "Provider fetch duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"provider"},
		),
		cacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_year_cache_requests_total",
				Help: "The total number of year cache lookups",
			},
			[]string{"backend", "result"},
		),
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_collection_runs_total",
				Help: "The total number of finished collection runs by outcome",
			},
			[]string{"status"},
		),
	}
}

func (m *PrometheusMetricsCollector) RecordProviderFetch(ctx context.Context, provider, status string, duration time.Duration) {
	m.fetches.WithLabelValues(provider, status).Inc()
	m.fetchLatency.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *PrometheusMetricsCollector) RecordYearCacheLookup(ctx context.Context, backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheRequests.WithLabelValues(backend, result).Inc()
}

func (m *PrometheusMetricsCollector) RecordCollectionRun(ctx context.Context, status string) {
	m.runs.WithLabelValues(status).Inc()
}
