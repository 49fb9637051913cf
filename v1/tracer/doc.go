// Package tracer provides distributed tracing built on OpenTelemetry.
//
// It wraps the OpenTelemetry SDK behind a small API: a Tracer type with
// StartSpan, RecordErrorOnSpan, SetAttributes, and carrier helpers for
// propagating trace context across service boundaries using W3C Trace
// Context headers.
//
// Spans are exported over OTLP HTTP when EnableExport is set; the exporter
// endpoint is taken from the standard OTEL_EXPORTER_OTLP_* environment
// variables. With export disabled the provider records spans in-process
// only, which keeps tests hermetic.
//
// # Usage
//
//	cfg := tracer.Config{
//	    ServiceName:  "embed-store",
//	    AppEnv:       "production",
//	    EnableExport: true,
//	}
//	tracerClient := tracer.NewClient(cfg, logger)
//
//	ctx, span := tracerClient.StartSpan(ctx, "vectordb-query")
//	defer span.End()
//
//	tracerClient.SetAttributes(span, map[string]interface{}{
//	    "collection": "embedchain_store",
//	})
//
// # FX Module Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Config {
//	        return tracer.Config{ServiceName: "embed-store"}
//	    }),
//	)
//
// The FX module shuts the provider down on application stop, flushing any
// pending spans.
package tracer
