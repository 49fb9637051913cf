package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and the HTTP server that
// exposes it for scraping.
//
// Each service maintains its own isolated registry to prevent metric name
// collisions when several services share a process.
type Metrics struct {
	// Server is the HTTP server exposing the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	Registry *prometheus.Registry

	// Core built-in metrics
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics initializes a Metrics instance: a dedicated registry, the
// built-in request metrics, optional standard collectors, and an HTTP
// server serving the registry.
//
// All metrics emitted through this instance automatically carry the label
//
//	service="<cfg.ServiceName>"
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "search-store",
//	})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{Registry: registry}

	m.requestsTotal = createCounterVec("requests_total", "Total number of processed requests", []string{"status"})
	m.requestDuration = createHistogramVec("request_duration_seconds", "Duration of requests in seconds", []string{"endpoint"}, prometheus.DefBuckets)

	wrappedRegistry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
	)

	// GoCollector: memory, goroutines, GC. ProcessCollector: CPU, fds.
	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	return m
}
