package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RAGQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "busbooking_rag_queries_total",
			Help: "Total number of free-text queries answered, by query type",
		},
		[]string{"query_type"},
	)

	RAGQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "busbooking_rag_query_duration_seconds",
			Help:    "Duration of free-text query handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RetrievalFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "busbooking_retrieval_failures_total",
			Help: "Total number of failed semantic retrieval calls",
		},
	)

	AnswerCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "busbooking_answer_cache_total",
			Help: "Answer cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "busbooking_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
)
