package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Query metrics
	QueryDuration *prometheus.HistogramVec
	QueryErrors   *prometheus.CounterVec

	// Analytics metrics
	InsightsGenerated *prometheus.CounterVec
	AnalysisDuration  *prometheus.HistogramVec
	RecordsSkipped    *prometheus.CounterVec
}

// NewCollector creates a collector on its own registry under namespace
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Query bus handler duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"query"},
		),
		QueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "query_errors_total",
				Help:      "Total number of failed queries",
			},
			[]string{"query"},
		),
		InsightsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "insights_generated_total",
				Help:      "Total number of insights produced by the analytics engine",
			},
			[]string{"kind"},
		),
		AnalysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "Analytics computation duration in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"kind"},
		),
		RecordsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_skipped_total",
				Help:      "Moments and cycles left out of an analysis",
			},
			[]string{"reason"},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.QueryDuration,
		c.QueryErrors,
		c.InsightsGenerated,
		c.AnalysisDuration,
		c.RecordsSkipped,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the registry holding the collector's metrics
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveHTTP records a completed HTTP request
func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveQuery implements the query bus metrics hook
func (c *Collector) ObserveQuery(queryType string, d time.Duration, err error) {
	c.QueryDuration.WithLabelValues(queryType).Observe(d.Seconds())
	if err != nil {
		c.QueryErrors.WithLabelValues(queryType).Inc()
	}
}

// RecordInsights implements ports.MetricsRecorder
func (c *Collector) RecordInsights(kind string, count int) {
	c.InsightsGenerated.WithLabelValues(kind).Add(float64(count))
}

// RecordAnalysisDuration implements ports.MetricsRecorder
func (c *Collector) RecordAnalysisDuration(kind string, d time.Duration) {
	c.AnalysisDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// RecordSkipped implements ports.MetricsRecorder
func (c *Collector) RecordSkipped(reason string, count int) {
	if count <= 0 {
		return
	}
	c.RecordsSkipped.WithLabelValues(reason).Add(float64(count))
}
