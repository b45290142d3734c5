// Package metric defines the Prometheus collectors exposed on /metrics.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fairness"

// Metrics bundles the service-level collectors.
type Metrics struct {
	// EvaluationsTotal counts evaluation requests by outcome: a
	// compliance level for completed evaluations, or an error code
	// (parse_error, schema_mismatch, internal) for rejected ones.
	EvaluationsTotal *prometheus.CounterVec

	// EvaluationDuration observes the full parse-to-report latency.
	EvaluationDuration prometheus.Histogram

	// RuleVerdictsTotal counts verdicts by rule and status.
	RuleVerdictsTotal *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EvaluationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "evaluations",
				Name:      "total",
				Help:      "Total number of evaluation requests by outcome",
			},
			[]string{"outcome"},
		),

		EvaluationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "evaluations",
				Name:      "duration_seconds",
				Help:      "Evaluation duration from parse to report",
				Buckets:   prometheus.DefBuckets,
			},
		),

		RuleVerdictsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rules",
				Name:      "verdicts_total",
				Help:      "Total number of rule verdicts by rule and status",
			},
			[]string{"rule", "status"},
		),
	}
}
