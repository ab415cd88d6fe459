// Package metrics exposes render and HTTP telemetry on a private Prometheus registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector. It implements render.Observer.
type Metrics struct {
	RendersTotal          *prometheus.CounterVec
	RenderDurationSeconds *prometheus.HistogramVec
	DecodeFailuresTotal   *prometheus.CounterVec

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sportvisual_renders_total",
				Help: "Total number of completed renders",
			},
			[]string{"variant"},
		),
		RenderDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sportvisual_render_duration_seconds",
				Help:    "Time from draw to settled frame",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"variant"},
		),
		DecodeFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sportvisual_image_decode_failures_total",
				Help: "Image layers omitted because their reference could not be decoded",
			},
			[]string{"variant"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sportvisual_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sportvisual_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.RendersTotal,
		m.RenderDurationSeconds,
		m.DecodeFailuresTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
	)

	return m
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// RenderCompleted records a finished render.
func (m *Metrics) RenderCompleted(variant string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RendersTotal.WithLabelValues(variant).Inc()
	m.RenderDurationSeconds.WithLabelValues(variant).Observe(elapsed.Seconds())
}

// DecodeFailed records an omitted image layer.
func (m *Metrics) DecodeFailed(variant string) {
	if m == nil {
		return
	}
	m.DecodeFailuresTotal.WithLabelValues(variant).Inc()
}
