// Package metrics exposes Prometheus metrics for the player API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "playerapi"

// Listing outcomes recorded by ListOutcome.
const (
	OutcomeOK               = "ok"
	OutcomeInvalidParameter = "invalid_parameter"
	OutcomeNoResults        = "no_results"
	OutcomeStoreUnavailable = "store_unavailable"
)

// Manager owns a private registry and the collectors registered on it.
type Manager struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	listOutcomes        *prometheus.CounterVec
	storeQueryDuration  *prometheus.HistogramVec
}

// NewManager creates a Manager backed by a fresh registry, so multiple
// managers (e.g. one per test) never collide on registration.
func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(reg)

	return &Manager{
		registry: reg,
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		listOutcomes: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "players",
			Name:      "list_outcomes_total",
			Help:      "Player listing results by outcome.",
		}, []string{"outcome"}),
		storeQueryDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "Record store query latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
}

// ObserveHTTP records one served request.
func (m *Manager) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ListOutcome counts a listing result.
func (m *Manager) ListOutcome(outcome string) {
	if m == nil {
		return
	}
	m.listOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveStore records the latency of a store operation.
func (m *Manager) ObserveStore(op string, d time.Duration) {
	if m == nil {
		return
	}
	m.storeQueryDuration.WithLabelValues(op).Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
