// Package metrics provides Prometheus-based monitoring and metrics collection
// functionality for Go applications.
//
// The metrics package is designed to provide a standardized observability
// approach with features such as configurable HTTP endpoints for metrics exposure,
// automatic runtime instrumentation, and integration with the Fx dependency
// injection framework.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides *Metrics for dependency injection
//
// Core Features:
//   - Exposes a configurable /metrics endpoint for Prometheus scraping
//   - Integration with go.uber.org/fx for automatic lifecycle management
//   - Automatic registration of Go runtime and process-level metrics
//   - Support for custom metric registration (counters, gauges, histograms)
//   - Service name labelling for multi-service observability
//   - Graceful startup and shutdown via Fx lifecycle hooks
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create metrics directly:
//
//	import "github.com/embedstack/std/v1/metrics"
//
//	cfg := metrics.Config{
//		Address:                 ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "embed-store",
//	}
//
//	m := metrics.NewMetrics(cfg)
//	go m.Server.ListenAndServe()
//
//	// Use built-in metrics
//	m.IncrementRequests("success")
//	defer m.RecordRequestDuration(time.Now(), "/query")
//
// # FX Module Integration
//
// For production applications using Uber's fx:
//
//	import (
//		"go.uber.org/fx"
//		"github.com/embedstack/std/v1/logger"
//		"github.com/embedstack/std/v1/metrics"
//	)
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{
//				Address:                 ":9090",
//				EnableDefaultCollectors: true,
//				ServiceName:             "embed-store",
//			}
//		}),
//		fx.Invoke(func(m *metrics.Metrics) {
//			m.IncrementRequests("success")
//		}),
//	)
//	app.Run()
//
// # Configuration
//
// The metrics server can be configured via environment variables:
//
//	METRICS_ADDRESS=:9090                      # Port and address for /metrics endpoint
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true     # Enable runtime and process metrics
//	METRICS_SERVICE_NAME=embed-store           # Adds service label to all metrics
//
// # Default Collectors
//
// When EnableDefaultCollectors is true, the package automatically registers
// the following collectors:
//   - Go runtime metrics (goroutines, GC stats, heap usage)
//   - Process metrics (CPU time, memory, file descriptors)
//
// # Custom Metrics
//
// Applications can register additional Prometheus metrics using the factory
// helpers or the exposed Registry. For example:
//
//	opDuration := m.CreateHistogram(
//	    "vectordb_operation_duration_seconds",
//	    "Histogram of vector store operation latencies.",
//	    []string{"component", "operation"},
//	    prometheus.DefBuckets,
//	)
//
// # Thread Safety
//
// All methods on the Metrics struct and Prometheus collectors are safe for
// concurrent use by multiple goroutines.
package metrics
