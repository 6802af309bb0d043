// Package metrics exposes Prometheus collectors for the AI fallback chain:
// which stage answered a request, and how the upstream dependencies
// (semantic gateway, LLM providers, external catalogs) behave.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
	OutcomeOpen    = "circuit_open"
)

var (
	// FallbackStageTotal counts which stage of a fallback chain produced the answer.
	FallbackStageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_ai_fallback_stage_total",
			Help: "Answers served per flow and fallback stage",
		},
		[]string{"flow", "stage"},
	)

	// UpstreamRequestsTotal counts outbound calls by upstream and outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_upstream_requests_total",
			Help: "Outbound requests to AI and catalog upstreams",
		},
		[]string{"upstream", "outcome"},
	)

	// UpstreamDuration tracks outbound call latency.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saga_upstream_duration_seconds",
			Help:    "Latency of outbound requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 180},
		},
		[]string{"upstream"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "saga_circuit_breaker_state",
			Help: "Circuit breaker state per upstream (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

func RecordFallbackStage(flow, stage string) {
	FallbackStageTotal.WithLabelValues(flow, stage).Inc()
}

func RecordUpstream(upstream, outcome string, elapsed time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(upstream, outcome).Inc()
	UpstreamDuration.WithLabelValues(upstream).Observe(elapsed.Seconds())
}

func SetCircuitBreakerState(name string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
}
