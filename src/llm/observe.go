package llm

import (
	"time"

	"dinner_planner/src/metrics"
)

// Observe records the outcome and latency of one chat model call.
func Observe(operation string, start time.Time, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	metrics.LLMRequests.WithLabelValues(operation, outcome).Inc()
	metrics.LLMRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Skipped records a call that was never attempted because no model is configured.
func Skipped(operation string) {
	metrics.LLMRequests.WithLabelValues(operation, metrics.OutcomeUnavailable).Inc()
}
