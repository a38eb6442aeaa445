package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatroom_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ThreadStoreOps counts thread-store operations by operation and result.
	ThreadStoreOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatroom_thread_store_ops_total",
		Help: "Total thread store operations by operation and result",
	}, []string{"operation", "result"})

	// VisibleSetRecomputeLatency records visible-set recompute latency.
	VisibleSetRecomputeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chatroom_visible_set_recompute_seconds",
		Help:    "Visible-set recompute latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// SortLatency records post-sorting latency by mode.
	SortLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chatroom_sort_latency_seconds",
		Help:    "Post sorting latency in seconds by mode",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})

	// FeedCacheLookups counts ranked-feed cache lookups by outcome.
	FeedCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatroom_feed_cache_lookups_total",
		Help: "Ranked-feed cache lookups by outcome",
	}, []string{"outcome"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chatroom_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// RecordStoreOp increments the thread-store operation counter.
func RecordStoreOp(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ThreadStoreOps.WithLabelValues(operation, result).Inc()
}

// TrackRecompute returns a function that records visible-set recompute
// latency when called (e.g. defer).
func TrackRecompute() func() {
	start := time.Now()
	return func() {
		VisibleSetRecomputeLatency.Observe(time.Since(start).Seconds())
	}
}

// TrackSort returns a function that records sort latency for the mode.
func TrackSort(mode string) func() {
	start := time.Now()
	return func() {
		SortLatency.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	}
}

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct{}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics() *DatabaseMetrics {
	return &DatabaseMetrics{}
}

// TrackQuery returns a function that records query latency when called.
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
