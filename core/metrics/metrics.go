package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the reconciliation counters and the registry they live in.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// MissingEntries counts missing (language, key) pairs found by the diff.
	MissingEntries *prometheus.CounterVec

	// Resolved counts translations supplied by the resolver.
	Resolved *prometheus.CounterVec

	// Writes counts apply outcomes per language and status.
	Writes *prometheus.CounterVec

	// Pending holds the missing entries per language of the last report built
	// in serve mode.
	Pending *prometheus.GaugeVec
}

// New creates the counters on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		MissingEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "locize_sync_missing_entries_total",
				Help: "Total number of missing translations found",
			},
			[]string{"language"},
		),
		Resolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "locize_sync_resolved_total",
				Help: "Total number of translations supplied by the resolver",
			},
			[]string{"language"},
		),
		Writes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "locize_sync_writes_total",
				Help: "Total number of per-language store writes by outcome",
			},
			[]string{"language", "status"},
		),
		Pending: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "locize_sync_pending_translations",
				Help: "Missing translations per language in the last report",
			},
			[]string{"language"},
		),
	}

	m.registry.MustRegister(m.MissingEntries, m.Resolved, m.Writes, m.Pending)
	return m
}

// ObserveMissing adds n missing entries for language.
func (m *Metrics) ObserveMissing(language string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.MissingEntries.WithLabelValues(language).Add(float64(n))
}

// ObserveResolved adds n resolved translations for language.
func (m *Metrics) ObserveResolved(language string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Resolved.WithLabelValues(language).Add(float64(n))
}

// ObserveWrite records one apply outcome.
func (m *Metrics) ObserveWrite(language, status string) {
	if m == nil {
		return
	}
	m.Writes.WithLabelValues(language, status).Inc()
}

// SetPending replaces the pending gauge values.
func (m *Metrics) SetPending(byLanguage map[string]int) {
	if m == nil {
		return
	}
	m.Pending.Reset()
	for language, n := range byLanguage {
		m.Pending.WithLabelValues(language).Set(float64(n))
	}
}

// Registry returns the registry the counters are registered in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
