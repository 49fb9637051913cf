// Package observability defines a lightweight observer hook that
// infrastructure clients in this library use to report the outcome of
// individual remote operations, plus a Prometheus-backed implementation
// built on the v1/metrics module.
package observability

import "time"

// OperationContext describes one completed remote operation.
type OperationContext struct {
	// Component is the emitting client package, e.g. "zilliz".
	Component string

	// Operation is the logical operation name, e.g. "search" or "upsert".
	Operation string

	// Resource is the primary resource acted on (collection, exchange, bucket).
	Resource string

	// SubResource narrows the resource when applicable (partition, routing key).
	SubResource string

	// Duration is the wall-clock time the operation took.
	Duration time.Duration

	// Error is the operation error, nil on success.
	Error error

	// Size is an operation-specific magnitude (records written, results
	// returned). Zero when not meaningful.
	Size int64

	// Metadata carries optional extra attributes.
	Metadata map[string]interface{}
}

// Observer receives operation outcomes. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}
