// Package metrics defines Prometheus metrics for the meal attendance engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealmanage_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealmanage_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealmanage_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	EventsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealmanage_events_recorded_total",
			Help: "Meal events recorded, by entry path",
		},
		[]string{"path"},
	)

	EventsUnclassified = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mealmanage_events_unclassified_total",
			Help: "Meal events recorded with no matching policy window",
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mealmanage_websocket_connections",
			Help: "Active WebSocket observer connections",
		},
	)

	BroadcastQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mealmanage_broadcast_queue_depth",
			Help: "Pending notifications in the broadcast queue",
		},
	)

	BroadcastsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mealmanage_broadcasts_dropped_total",
			Help: "Notifications dropped because the broadcast queue was full",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		EventsRecorded, EventsUnclassified,
		WSConnections, BroadcastQueueDepth, BroadcastsDropped,
	)
}
