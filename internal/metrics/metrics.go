// Package metrics exposes Prometheus counters for tip-out activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Tipout collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	Calculations       *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	PercentageWarnings prometheus.Counter
	PersistFailures    prometheus.Counter
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tipout_calculations_total",
			Help: "Completed tip-out calculations by method.",
		}, []string{"method"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tipout_validation_failures_total",
			Help: "Rejected tip-out calculations by reason.",
		}, []string{"reason"}),
		PercentageWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tipout_percentage_warnings_total",
			Help: "Percentage calculations whose shares did not add up to 100.",
		}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tipout_history_persist_failures_total",
			Help: "History writes that failed to reach local storage.",
		}),
	}
	m.registry.MustRegister(m.Calculations, m.ValidationFailures, m.PercentageWarnings, m.PersistFailures)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
