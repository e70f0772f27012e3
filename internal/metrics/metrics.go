// Package metrics exposes Prometheus collectors for the generation dispatcher.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "studyhub"

// DispatchMetrics groups the dispatcher's collectors.
// A nil *DispatchMetrics is valid and records nothing.
type DispatchMetrics struct {
	Calls *prometheus.CounterVec

	Attempts *prometheus.CounterVec

	AbandonedCredentials *prometheus.CounterVec

	Backoffs prometheus.Counter

	BackoffSeconds prometheus.Counter

	CallDuration prometheus.Histogram
}

// NewDispatchMetrics creates the collectors and registers them with reg.
func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	factory := promauto.With(reg)

	return &DispatchMetrics{
		Calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatch_calls_total",
				Help:      "Total number of top-level dispatch calls",
			},
			[]string{"result"}, // result: success|no_credentials|empty_prompt|exhausted|canceled
		),
		Attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatch_attempts_total",
				Help:      "Backend calls issued by the dispatcher",
			},
			[]string{"model", "outcome"},
		),
		AbandonedCredentials: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatch_abandoned_credentials_total",
				Help:      "Credentials abandoned for the rest of an attempt cycle",
			},
			[]string{"credential"},
		),
		Backoffs: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatch_backoffs_total",
				Help:      "Cooldown waits between attempt cycles",
			},
		),
		BackoffSeconds: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatch_backoff_seconds_total",
				Help:      "Total seconds spent in cooldown waits",
			},
		),
		CallDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dispatch_call_duration_seconds",
				Help:      "Wall time of top-level dispatch calls",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
		),
	}
}

// ObserveCall records the end of a dispatch call.
func (m *DispatchMetrics) ObserveCall(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Calls.WithLabelValues(result).Inc()
	m.CallDuration.Observe(elapsed.Seconds())
}

// ObserveAttempt records one backend call.
func (m *DispatchMetrics) ObserveAttempt(model, outcome string) {
	if m == nil {
		return
	}
	m.Attempts.WithLabelValues(model, outcome).Inc()
}

// ObserveAbandon records a credential abandoned within a cycle.
func (m *DispatchMetrics) ObserveAbandon(credential string) {
	if m == nil {
		return
	}
	m.AbandonedCredentials.WithLabelValues(credential).Inc()
}

// ObserveBackoff records one cooldown wait.
func (m *DispatchMetrics) ObserveBackoff(d time.Duration) {
	if m == nil {
		return
	}
	m.Backoffs.Inc()
	m.BackoffSeconds.Add(d.Seconds())
}
