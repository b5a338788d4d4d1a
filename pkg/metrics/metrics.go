// Package metrics exposes Prometheus metrics for schema evaluations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/rulekit"
)

// Evaluation modes used as the "mode" label.
const (
	ModeSync  = "sync"
	ModeAsync = "async"
)

// UndeclaredField is the "field" label shared by every key rejected in
// strict mode, so client supplied keys never become label values.
const UndeclaredField = "_undeclared"

// DefaultDurationBuckets range from pure in-memory schemas to schemas with
// several store lookups.
var DefaultDurationBuckets = []float64{
	0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
}

// Recorder holds the evaluation metrics.
type Recorder struct {
	// Evaluations counts schema evaluations by schema, mode and outcome.
	Evaluations *prometheus.CounterVec

	// FieldFailures counts failed fields by schema and field.
	FieldFailures *prometheus.CounterVec

	Duration *prometheus.HistogramVec
}

// New registers the metrics with the default Prometheus registerer.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg. Use
// prometheus.NewRegistry() in tests.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rulekit_evaluations_total",
			Help: "Schema evaluations by schema, mode and outcome",
		}, []string{"schema", "mode", "outcome"}),

		FieldFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rulekit_field_failures_total",
			Help: "Fields that failed validation, by schema and field",
		}, []string{"schema", "field"}),

		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rulekit_evaluation_duration_seconds",
			Help:    "Schema evaluation duration in seconds",
			Buckets: DefaultDurationBuckets,
		}, []string{"schema", "mode"}),
	}
}

// Observe records one finished evaluation of the declared schema. Failed
// keys absent from declared are counted under UndeclaredField. A nil
// Recorder is a no-op.
func (r *Recorder) Observe(schema, mode string, declared rulekit.Schema, result rulekit.SchemaErrors, elapsed time.Duration) {
	if r == nil {
		return
	}

	outcome := "valid"
	failed := result.Failed()
	if len(failed) > 0 {
		outcome = "invalid"
	}
	r.Evaluations.WithLabelValues(schema, mode, outcome).Inc()
	for _, field := range failed {
		if _, ok := declared[field]; !ok {
			field = UndeclaredField
		}
		r.FieldFailures.WithLabelValues(schema, field).Inc()
	}
	r.Duration.WithLabelValues(schema, mode).Observe(elapsed.Seconds())
}

// ObserveTimeout records an evaluation abandoned after its deadline.
func (r *Recorder) ObserveTimeout(schema, mode string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.Evaluations.WithLabelValues(schema, mode, "timeout").Inc()
	r.Duration.WithLabelValues(schema, mode).Observe(elapsed.Seconds())
}
