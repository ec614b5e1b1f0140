package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/calcgate/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the calculator collectors and the registry they live in.
type Metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	exits        *prometheus.CounterVec
	duration     prometheus.Histogram
}

// NewMetrics creates and registers the calculator collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calcgate_calculations_total",
				Help: "Total number of calculations by outcome",
			},
			[]string{"outcome"},
		),
		exits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calcgate_evaluator_exit_total",
				Help: "Evaluator runs by exit status",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "calcgate_evaluator_duration_seconds",
				Help:    "Duration of evaluator runs",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	m.registry.MustRegister(
		m.calculations,
		m.exits,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe records one evaluation event.
func (m *Metrics) Observe(e *domain.EvaluationEvent) {
	m.calculations.WithLabelValues(e.Outcome).Inc()
	if e.Outcome == "unavailable" {
		return
	}
	status := "zero"
	if e.ExitCode != 0 {
		status = "nonzero"
	}
	m.exits.WithLabelValues(status).Inc()
	m.duration.Observe(e.Duration.Seconds())
}

// Hooks returns lifecycle hooks that feed these metrics. next, if set, is called afterwards.
func (m *Metrics) Hooks(next domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEvaluate: func(ctx context.Context, e *domain.EvaluationEvent) {
			m.Observe(e)
			if next.OnEvaluate != nil {
				next.OnEvaluate(ctx, e)
			}
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for callers adding their own collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
