package prometheus

import (
	"time"

	"dashboard-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Sync run metrics
	SyncRunsTotal        prometheus.CounterVec
	SyncRunDuration      prometheus.Histogram
	SyncRecordsProcessed prometheus.CounterVec

	// Referential gap metrics
	OrdersSkippedCounter prometheus.Counter
	ItemsDroppedCounter  prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Sync run metrics
	SyncRunsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_sync_runs_total",
			Help: "Total number of sync runs by outcome",
		},
		[]string{"status"},
	)

	SyncRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_sync_run_duration_seconds",
			Help:    "Duration of full sync runs in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	SyncRecordsProcessed = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_sync_records_processed_total",
			Help: "Total number of records processed by sync runs",
		},
		[]string{"entity"},
	)

	// Referential gap metrics
	OrdersSkippedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_sync_orders_skipped_total",
			Help: "Total number of orders skipped because no items survived product validation",
		},
	)

	ItemsDroppedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_sync_items_dropped_total",
			Help: "Total number of order items dropped for referencing missing products",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordSyncRun increments the run counter for an outcome and observes duration
func RecordSyncRun(status string, duration time.Duration) {
	SyncRunsTotal.WithLabelValues(status).Inc()
	SyncRunDuration.Observe(duration.Seconds())
}

// RecordSyncedRecords adds to the processed-records counter for an entity type
func RecordSyncedRecords(entity string, count int) {
	SyncRecordsProcessed.WithLabelValues(entity).Add(float64(count))
}
