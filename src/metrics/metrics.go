package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinner_llm_requests_total",
			Help: "Total number of chat model calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dinner_llm_request_duration_seconds",
			Help:    "Duration of chat model calls in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
		[]string{"operation"},
	)

	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinner_search_requests_total",
			Help: "Total number of web search calls by outcome",
		},
		[]string{"outcome"},
	)

	Fallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinner_fallbacks_total",
			Help: "Number of times an operation degraded to its static fallback",
		},
		[]string{"operation"},
	)

	ReadinessDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinner_readiness_decisions_total",
			Help: "Readiness classifier outcomes",
		},
		[]string{"ready"},
	)
)

const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"
)
