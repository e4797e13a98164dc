package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval Prometheus metrics.
var (
	RetrievalQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "comps",
			Name:      "retrieval_queries_total",
			Help:      "Total number of retrieval attempts",
		},
		[]string{"attempt"}, // "strict" / "widened"
	)

	RetrievalFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "comps",
			Name:      "retrieval_fallback_total",
			Help:      "Total number of TLD fallback activations",
		},
	)

	RetrievalCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "comps",
			Name:      "retrieval_candidates",
			Help:      "Candidate count per retrieval after post-filtering",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 200},
		},
	)
)

var retrMetricsRegistered bool

// RegisterRetrievalMetrics registers Prometheus retrieval metrics. Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrMetricsRegistered {
		return
	}
	prometheus.MustRegister(RetrievalQueriesTotal)
	prometheus.MustRegister(RetrievalFallbackTotal)
	prometheus.MustRegister(RetrievalCandidates)
	retrMetricsRegistered = true
}
