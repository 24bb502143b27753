// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InteractionsTotal counts interaction mutations by kind and operation.
	InteractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_interactions_total",
		Help: "Total number of interaction mutations by kind and operation",
	}, []string{"kind", "op"})

	// NotificationsEmitted counts notification rows successfully recorded.
	NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_notifications_emitted_total",
		Help: "Total number of notification records created",
	}, []string{"type"})

	// NotificationsDropped counts notification writes that failed and were discarded.
	NotificationsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_notifications_dropped_total",
		Help: "Total number of notification records dropped after a write failure",
	}, []string{"type"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pulse_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// WebSocketDrops counts stream messages dropped by reason (buffer full, closed client).
	WebSocketDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_websocket_dropped_messages_total",
		Help: "Messages dropped on the notification stream by reason",
	}, []string{"reason"})

	// WebSocketConnections is the gauge of active notification stream connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pulse_websocket_connections",
		Help: "Number of active notification WebSocket connections",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
