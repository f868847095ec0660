// Package metrics exposes Prometheus collectors for HTTP traffic, catalog
// lookups and summary generation.
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

const namespace = "book_organiser"

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds every collector of the application. A nil *Metrics is valid
// and records nothing, which keeps tests and the CLI free of registry setup.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	catalogRequests *prometheus.CounterVec
	catalogLatency  *prometheus.HistogramVec

	summaryFields  *prometheus.CounterVec
	summaryRuns    prometheus.Counter
	summaryPending prometheus.Gauge
}

// New creates the collectors on a fresh registry, including Go runtime and
// process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{registry: registry}

	m.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	m.httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	m.catalogRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "requests_total",
			Help:      "Total number of Google Books requests",
		},
		[]string{"kind", "outcome"},
	)
	m.catalogLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "request_duration_seconds",
			Help:      "Google Books request latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"kind"},
	)
	m.summaryFields = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "summaries",
			Name:      "fields_generated_total",
			Help:      "Generated summary fields by field and outcome",
		},
		[]string{"field", "outcome"},
	)
	m.summaryRuns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "summaries",
			Name:      "poller_runs_total",
			Help:      "Total number of completed poller runs",
		},
	)
	m.summaryPending = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "summaries",
			Name:      "pending",
			Help:      "Pending summaries seen by the last poller run",
		},
	)

	registry.MustRegister(
		m.httpRequests,
		m.httpLatency,
		m.catalogRequests,
		m.catalogLatency,
		m.summaryFields,
		m.summaryRuns,
		m.summaryPending,
	)

	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request counts and latency per matched route
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveCatalogRequest records one Google Books call
func (m *Metrics) ObserveCatalogRequest(kind string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.catalogRequests.WithLabelValues(kind, outcome(err)).Inc()
	m.catalogLatency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveSummaryField records the generation of one summary field
func (m *Metrics) ObserveSummaryField(field string, err error) {
	if m == nil {
		return
	}
	m.summaryFields.WithLabelValues(field, outcome(err)).Inc()
}

// ObservePollerRun records a finished poller run and the pending count it saw
func (m *Metrics) ObservePollerRun(pending int) {
	if m == nil {
		return
	}
	m.summaryRuns.Inc()
	m.summaryPending.Set(float64(pending))
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
