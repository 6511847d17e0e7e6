package metrics

import "github.com/prometheus/client_golang/prometheus"

// Vector index Prometheus metrics.
var (
	IndexRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "index_requests_total",
			Help:      "Total number of vector index queries",
		},
		[]string{"driver", "status"},
	)

	IndexRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "index_request_duration_seconds",
			Help:      "Vector index query duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"driver"},
	)

	IndexMatchesReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "index_matches_returned",
			Help:      "Number of matches returned per vector index query",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 25, 50, 100},
		},
		[]string{"driver"},
	)
)

var indexMetricsRegistered bool

// RegisterIndexMetrics registers Prometheus vector index metrics. Must be called once from main.
func RegisterIndexMetrics() {
	if indexMetricsRegistered {
		return
	}
	prometheus.MustRegister(IndexRequestsTotal)
	prometheus.MustRegister(IndexRequestDuration)
	prometheus.MustRegister(IndexMatchesReturned)
	indexMetricsRegistered = true
}
