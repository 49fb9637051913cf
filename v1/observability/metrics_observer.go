package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/embedstack/std/v1/metrics"
)

// MetricsObserver is an Observer implementation that exports operation
// outcomes as Prometheus metrics through the v1/metrics module.
//
// It publishes two metric families:
//   - operations_total{component, operation, status}
//   - operation_duration_seconds{component, operation}
type MetricsObserver struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewMetricsObserver registers the observer's collectors with the given
// metrics instance and returns the observer.
func NewMetricsObserver(m *metrics.Metrics) *MetricsObserver {
	return &MetricsObserver{
		operationsTotal: m.CreateCounter(
			"operations_total",
			"Total number of client operations by component, operation and status.",
			[]string{"component", "operation", "status"},
		),
		operationDuration: m.CreateHistogram(
			"operation_duration_seconds",
			"Duration of client operations in seconds.",
			[]string{"component", "operation"},
			prometheus.DefBuckets,
		),
	}
}

// ObserveOperation records one completed operation.
func (o *MetricsObserver) ObserveOperation(ctx OperationContext) {
	status := "success"
	if ctx.Error != nil {
		status = "error"
	}
	o.operationsTotal.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	o.operationDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())
}
