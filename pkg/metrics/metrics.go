// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// EventsCreatedTotal tracks events created through the API or seed load.
	EventsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agenda_events_created_total",
			Help: "Total agenda events created",
		},
		[]string{"source"},
	)

	// EventsUpdatedTotal tracks event updates.
	EventsUpdatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agenda_events_updated_total",
			Help: "Total agenda events updated",
		},
	)

	// EventsDeletedTotal tracks event deletions.
	EventsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agenda_events_deleted_total",
			Help: "Total agenda events deleted",
		},
	)

	// StoreEvents tracks the current number of events in the store.
	StoreEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "agenda_store_events",
			Help: "Number of events currently in the store",
		},
	)

	// DatePhraseOutcomes tracks how date phrases resolved during
	// normalization, labeled by date status.
	DatePhraseOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agenda_date_phrase_outcomes_total",
			Help: "Date phrase parse outcomes by status",
		},
		[]string{"status"},
	)

	// PublishFailuresTotal tracks failed NATS lifecycle publishes.
	PublishFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agenda_publish_failures_total",
			Help: "Failed lifecycle event publishes",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}
