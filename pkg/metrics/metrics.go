// Package metrics holds the Prometheus collectors of the service on a
// private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"

	WebhookIgnored     = "ignored"
	WebhookRejected    = "rejected"
	WebhookRateLimited = "rate_limited"
)

// Collector holds all Prometheus metrics for the application.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Gateway metrics
	GatewayOperations *prometheus.CounterVec
	GatewayDuration   *prometheus.HistogramVec

	// Aggregator metrics
	ListSize   prometheus.Gauge
	PageLoads  *prometheus.CounterVec
	StaleDrops prometheus.Counter

	// Flow and sync metrics
	Notifications *prometheus.CounterVec
	WebhookEvents *prometheus.CounterVec
}

// NewCollector creates the collectors under namespace on a fresh registry,
// together with the Go runtime and process collectors.
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
		GatewayOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gateway_operations_total",
				Help:      "Total number of note store operations",
			},
			[]string{"operation", "driver", "status"},
		),
		GatewayDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "gateway_operation_duration_seconds",
				Help:      "Note store operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "driver"},
		),
		ListSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "aggregate_list_size",
				Help:      "Number of notes currently loaded in the aggregate list",
			},
		),
		PageLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "page_loads_total",
				Help:      "Page loads by kind (first, next) and outcome (applied, skipped, stale, error)",
			},
			[]string{"kind", "outcome"},
		),
		StaleDrops: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stale_pages_dropped_total",
				Help:      "Fetched pages discarded because a newer refresh started",
			},
		),
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_total",
				Help:      "Terminal notifications surfaced to the user",
			},
			[]string{"kind"},
		),
		WebhookEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_events_total",
				Help:      "Memos webhook events by activity type and result",
			},
			[]string{"activity", "status"},
		),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.GatewayOperations,
		c.GatewayDuration,
		c.ListSize,
		c.PageLoads,
		c.StaleDrops,
		c.Notifications,
		c.WebhookEvents,
	)
	return c
}

// Registry returns the registry the collectors are registered on.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveGateway records one note store call.
func (c *Collector) ObserveGateway(operation, driver string, started time.Time, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	c.GatewayOperations.WithLabelValues(operation, driver, status).Inc()
	c.GatewayDuration.WithLabelValues(operation, driver).Observe(time.Since(started).Seconds())
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route string, status int, started time.Time) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
}
