// Package metrics exposes the service's Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "passbook"

// Registry owns a private prometheus registry and the service's collectors.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Registry struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	assemblyDuration    prometheus.Histogram
	assembledEntries    prometheus.Histogram
	upstreamFailures    *prometheus.CounterVec
}

// NewRegistry creates the registry with Go runtime and process collectors included
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		assemblyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "assembly_duration_seconds",
			Help:      "Time to fetch both sources and assemble a passbook.",
			Buckets:   prometheus.DefBuckets,
		}),
		assembledEntries: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "assembled_entries",
			Help:      "Number of entries in each assembled passbook.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		upstreamFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "upstream_failures_total",
			Help:      "Failed upstream fetches by source.",
		}, []string{"source"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequestsTotal,
		r.httpRequestDuration,
		r.assemblyDuration,
		r.assembledEntries,
		r.upstreamFailures,
	)
	return r
}

// ObserveAssembly records one passbook assembly
func (r *Registry) ObserveAssembly(duration time.Duration, entries int) {
	r.assemblyDuration.Observe(duration.Seconds())
	r.assembledEntries.Observe(float64(entries))
}

// UpstreamFailure counts a failed fetch from source
func (r *Registry) UpstreamFailure(source string) {
	r.upstreamFailures.WithLabelValues(source).Inc()
}

// GinMiddleware records request count and latency per route template.
// Unmatched routes are grouped under "unmatched" to bound label cardinality.
func (r *Registry) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		r.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		r.httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the underlying registry for tests and custom exporters
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
