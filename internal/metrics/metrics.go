// Package metrics holds the Prometheus collectors of the catalogue service.
//
//   - catalog_provider_requests_total{outcome} (Counter): mock provider calls, outcome ok|failure
//   - catalog_loads_total{outcome} (Counter): session load attempts, outcome ready|all_loaded|error|ignored
//   - catalog_fetch_duration_seconds (Histogram): controller fetch latency including timeouts
//   - catalog_sessions_active (Gauge): live page sessions
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK        = "ok"
	OutcomeFailure   = "failure"
	OutcomeReady     = "ready"
	OutcomeAllLoaded = "all_loaded"
	OutcomeError     = "error"
	OutcomeIgnored   = "ignored"
)

// Metrics is safe to use as a nil pointer; every method becomes a no-op.
type Metrics struct {
	providerRequests *prometheus.CounterVec
	loads            *prometheus.CounterVec
	fetchDuration    prometheus.Histogram
	sessionsActive   prometheus.Gauge
}

// New registers the collectors on reg. A nil registerer yields nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	m := &Metrics{
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_provider_requests_total",
			Help: "Mock catalogue provider calls by outcome.",
		}, []string{"outcome"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Load-more attempts by resulting outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_fetch_duration_seconds",
			Help:    "Duration of controller fetches in seconds.",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_sessions_active",
			Help: "Page sessions currently held in memory.",
		}),
	}
	reg.MustRegister(m.providerRequests, m.loads, m.fetchDuration, m.sessionsActive)
	return m
}

func (m *Metrics) ObserveProvider(outcome string) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveLoad(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(outcome).Inc()
	if outcome != OutcomeIgnored {
		m.fetchDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) SetSessionsActive(n int) {
	if m == nil {
		return
	}
	m.sessionsActive.Set(float64(n))
}
