// Package metrics provides Prometheus metrics for the feedback dashboard.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ComposerCalls counts AI composer calls by operation and outcome (ok, fallback, skipped).
	ComposerCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedback",
			Name:      "composer_calls_total",
			Help:      "Total number of AI composer calls",
		},
		[]string{"operation", "outcome"},
	)

	// AggregationDuration measures stats and trends computation.
	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "feedback",
			Name:      "aggregation_duration_seconds",
			Help:      "Duration of feedback aggregation in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// AggregatedRecords observes how many records each aggregation read.
	AggregatedRecords = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "feedback",
			Name:      "aggregated_records",
			Help:      "Number of feedback records read per aggregation",
			Buckets:   []float64{0, 10, 50, 100, 500, 1000, 5000, 10000},
		},
		[]string{"kind"},
	)

	// StoreErrors counts failed store operations.
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedback",
			Name:      "store_errors_total",
			Help:      "Total number of failed store operations",
		},
		[]string{"operation"},
	)

	// AlertsPublished counts trend alerts by notifier outcome.
	AlertsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedback",
			Name:      "trend_alerts_total",
			Help:      "Total number of rating-drop alerts",
		},
		[]string{"status"},
	)
)

// RecordComposer records one composer call.
func RecordComposer(operation, outcome string) {
	ComposerCalls.WithLabelValues(operation, outcome).Inc()
}

// RecordAggregation records an aggregation pass.
func RecordAggregation(kind string, records int, started time.Time) {
	AggregationDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
	AggregatedRecords.WithLabelValues(kind).Observe(float64(records))
}

// RecordStoreError records a failed store operation.
func RecordStoreError(operation string) {
	StoreErrors.WithLabelValues(operation).Inc()
}
