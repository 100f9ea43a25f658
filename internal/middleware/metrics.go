package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP metrics shared by every route.
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Ledger metrics incremented by the services and the outbox worker.
var (
	MovementsRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_movements_registered_total",
		Help: "Movements registered, conversion legs included.",
	})

	ConversionsRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_conversions_registered_total",
		Help: "Currency conversions registered.",
	})

	OutboxEventsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "outbox_events_processed_total",
		Help: "Ledger events folded into the treasury snapshot.",
	})

	OutboxEventsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "outbox_events_failed_total",
		Help: "Ledger events that failed to apply and were left for retry.",
	})
)

// InitMetrics registers the application metrics with the default registry.
func InitMetrics() {
	prometheus.MustRegister(
		httpInFlight, httpRequestsTotal, httpRequestDuration,
		MovementsRegistered, ConversionsRegistered,
		OutboxEventsProcessed, OutboxEventsFailed,
	)
}

// MetricsHandler exposes the Prometheus scrape endpoint as a Gin handler.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// Metrics measures request rate, latency and in-flight count per route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Use the route template so path cardinality stays bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		httpInFlight.Inc()
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpInFlight.Dec()
	}
}
