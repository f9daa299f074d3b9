package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "postquery",
			Name:      "search_requests_total",
			Help:      "Total number of post searches",
		},
		[]string{"status"}, // "ok" / "rejected" / "canceled" / "error"
	)

	QueryRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "postquery",
			Name:      "query_rejected_total",
			Help:      "Search queries rejected by the tokenizer",
		},
		[]string{"reason"},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "postquery",
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	StorageQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "postquery",
			Name:      "storage_query_duration_seconds",
			Help:      "Post store query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"driver", "status"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(QueryRejectedTotal)
	prometheus.MustRegister(SearchCacheTotal)
	prometheus.MustRegister(StorageQueryDuration)
	searchMetricsRegistered = true
}
