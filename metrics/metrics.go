// Package metrics holds the Prometheus collectors of the archive API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every collector. A nil *Manager records nothing.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	searchQueries       *prometheus.CounterVec
	searchResults       prometheus.Histogram
	dataQuality         *prometheus.CounterVec
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) { m.namespace = ns }
}

// WithHistogramBuckets sets the request duration buckets.
func WithHistogramBuckets(b []float64) Option {
	return func(m *Manager) { m.buckets = b }
}

// WithRegistry registers the collectors on r instead of a fresh registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) { m.registry = r }
}

// New builds a Manager on its own registry so the process collectors of the
// default registry stay out of /metrics.
func New(opts ...Option) *Manager {
	m := &Manager{
		namespace: "wrestleapi",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(m.registry)
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   m.buckets,
	}, []string{"route", "method", "status"})
	m.searchQueries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "search",
		Name:      "queries_total",
		Help:      "Search queries by type filter",
	}, []string{"type"})
	m.searchResults = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "search",
		Name:      "result_pool_size",
		Help:      "Ranked results before pagination",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
	})
	m.dataQuality = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "data",
		Name:      "quality_defects_total",
		Help:      "Source data defects tolerated while building responses",
	}, []string{"stage", "reason"})
	return m
}

// ObserveHTTP records one served request.
func (m *Manager) ObserveHTTP(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(route, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, code).Observe(d.Seconds())
}

// SearchQuery records a search and the size of its ranked pool.
func (m *Manager) SearchQuery(typeFilter string, pool int) {
	if m == nil {
		return
	}
	if typeFilter == "" {
		typeFilter = "all"
	}
	m.searchQueries.WithLabelValues(typeFilter).Inc()
	m.searchResults.Observe(float64(pool))
}

// DataDefect counts one tolerated defect.
func (m *Manager) DataDefect(stage, reason string) {
	if m == nil {
		return
	}
	m.dataQuality.WithLabelValues(stage, reason).Inc()
}

// Registry exposes the registry, mostly for tests.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
