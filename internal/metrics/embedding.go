package metrics

import "github.com/prometheus/client_golang/prometheus"

// Embedding Prometheus metrics.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "postfind",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "postfind",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "postfind",
			Name:      "embedding_errors_total",
			Help:      "Total embedding errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "postfind",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	// SearchDegradedTotal counts requests that fell back to a subset of
	// candidate sources (embedding failure or partial store failure).
	SearchDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "postfind",
			Name:      "search_degraded_total",
			Help:      "Search requests served without the full source set",
		},
		[]string{"reason"},
	)
)

var embMetricsRegistered bool

// RegisterEmbeddingMetrics registers Prometheus embedding and search metrics.
// Must be called once from main.
func RegisterEmbeddingMetrics() {
	if embMetricsRegistered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingErrorsTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(SearchDegradedTotal)
	embMetricsRegistered = true
}
