// Package logger provides structured logging functionality for Go applications.
//
// The logger package is designed to provide a standardized logging approach
// with features such as log levels, contextual logging, distributed tracing integration,
// and flexible output formatting. It integrates with the fx dependency injection framework
// for easy incorporation into applications.
//
// Core Features:
//   - Structured logging with key-value pairs
//   - Support for multiple log levels (Debug, Info, Warn, Error, Fatal)
//   - Context-aware logging for request tracing
//   - Distributed tracing integration with OpenTelemetry
//   - Automatic trace and span ID extraction from context
//   - JSON output with ISO8601 timestamps
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create a logger directly:
//
//	import "github.com/embedstack/std/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         "info",
//		ServiceName:   "embed-store",
//		EnableTracing: true,
//	})
//
//	// Log with structured fields (without context)
//	log.Info("Collection loaded", nil, map[string]interface{}{
//		"collection": "embedchain_store",
//	})
//
//	// Log with trace context (automatically includes trace_id and span_id)
//	log.InfoWithContext(ctx, "Processing query", nil, map[string]interface{}{
//		"top_k": 5,
//	})
//
// # FX Module Integration
//
// For production applications using Uber's fx:
//
//	import (
//		"github.com/embedstack/std/v1/logger"
//		"go.uber.org/fx"
//	)
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{
//				Level:       "info",
//				ServiceName: "embed-store",
//			}
//		}),
//		// other modules...
//	)
//	app.Run()
//
// The FX module registers a shutdown hook that flushes buffered log entries
// when the application stops.
package logger
