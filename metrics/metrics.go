// Package metrics counts template steps and visitor dispatches with Prometheus collectors.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/go-leo/behavior/templatemethod"
	"github.com/go-leo/behavior/visitor"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the collectors. Register them before use; an unregistered Metrics still counts.
type Metrics struct {
	Steps      *prometheus.CounterVec
	Dispatches *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// New returns collectors under namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Help:      "Total number of rendered variable steps",
				Namespace: namespace,
				Subsystem: "template",
				Name:      "steps_total",
			},
			[]string{"skeleton", "variant", "step", "outcome"},
		),
		Dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Help:      "Total number of visitor dispatches",
				Namespace: namespace,
				Subsystem: "visitor",
				Name:      "dispatches_total",
			},
			[]string{"operation", "tag", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Help:      "Visitor handler duration distributions",
				Namespace: namespace,
				Subsystem: "visitor",
				Name:      "duration_seconds",
				Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .25},
			},
			[]string{"operation"},
		),
	}
}

// Register registers every collector with r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	var err error
	for _, c := range []prometheus.Collector{m.Steps, m.Dispatches, m.Duration} {
		err = multierr.Append(err, r.Register(c))
	}
	return err
}

// Binding returns a middleware counting the steps a variant of skeleton renders.
func Binding[V any](m *Metrics, skeleton, variant string) templatemethod.BindingMiddleware[V] {
	return templatemethod.BindingMiddlewareFunc[V](func(step templatemethod.StepID, binding templatemethod.Binding[V]) templatemethod.Binding[V] {
		return func(ctx context.Context, v V, arg templatemethod.Arg) (string, error) {
			text, err := binding(ctx, v, arg)
			m.Steps.WithLabelValues(skeleton, variant, string(step), outcome(err)).Inc()
			return text, err
		}
	})
}

// Handler returns a middleware counting and timing visitor dispatches.
func Handler[R any](m *Metrics) visitor.HandlerMiddleware[R] {
	return visitor.HandlerMiddlewareFunc[R](func(op string, tag visitor.Tag, handler visitor.Handler[R]) visitor.Handler[R] {
		return func(ctx context.Context, e visitor.Element) (R, error) {
			start := time.Now()
			r, err := handler(ctx, e)
			m.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
			m.Dispatches.WithLabelValues(op, string(tag), outcome(err)).Inc()
			return r, err
		}
	})
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
