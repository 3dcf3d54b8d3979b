// Package metrics holds the Prometheus collectors for product operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Operation outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics groups the collectors recorded by the product service.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

// New creates a registry with the product counters and Go runtime collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "productapi",
		Name:      "product_operations_total",
		Help:      "Product operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	registry.MustRegister(
		operations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:   registry,
		operations: operations,
	}
}

// Registry returns the registry to expose over HTTP.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveOperation counts one product operation. A nil receiver is a no-op.
func (m *Metrics) ObserveOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}
