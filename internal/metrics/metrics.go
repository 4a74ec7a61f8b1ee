// Package metrics exports Prometheus metrics for post runs.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/jonesrussell/north-cloud/postbot/internal/publisher"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "postbot"

// Generation sources.
const (
	SourceProvider = "provider"
	SourceFallback = "fallback"
)

// Post results.
const (
	ResultSuccess        = "success"
	ResultConfiguration  = "configuration"
	ResultAuthentication = "authentication"
	ResultPermission     = "permission"
	ResultRateLimit      = "rate_limit"
	ResultUnknown        = "unknown"
)

// Metrics holds the bot's collectors.
type Metrics struct {
	registry *prometheus.Registry

	PostsTotal       *prometheus.CounterVec
	GenerationsTotal *prometheus.CounterVec
	RunDuration      prometheus.Histogram
	LastSuccess      prometheus.Gauge
}

// New registers the collectors on a fresh registry, together with the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PostsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_total",
			Help:      "Post attempts by result",
		}, []string{"result"}),
		GenerationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generated posts by category and source (provider or fallback)",
		}, []string{"category", "source"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Time to generate and publish one post",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		LastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful post",
		}),
	}
}

// RecordGeneration counts one generated post.
func (m *Metrics) RecordGeneration(category string, usedFallback bool) {
	source := SourceProvider
	if usedFallback {
		source = SourceFallback
	}
	m.GenerationsTotal.WithLabelValues(category, source).Inc()
}

// RecordPost counts one post attempt and its duration.
func (m *Metrics) RecordPost(err error, duration time.Duration) {
	m.PostsTotal.WithLabelValues(Result(err)).Inc()
	m.RunDuration.Observe(duration.Seconds())
	if err == nil {
		m.LastSuccess.SetToCurrentTime()
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Result maps a publishing error to its result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, publisher.ErrConfiguration):
		return ResultConfiguration
	case errors.Is(err, publisher.ErrAuthentication):
		return ResultAuthentication
	case errors.Is(err, publisher.ErrPermission):
		return ResultPermission
	case errors.Is(err, publisher.ErrRateLimit):
		return ResultRateLimit
	default:
		return ResultUnknown
	}
}
