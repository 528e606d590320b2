package observability

import (
	"context"
	"errors"

	"github.com/aretw0/mazerunner/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors updated by the lifecycle hooks.
type Metrics struct {
	RunsStarted  prometheus.Counter
	RunsFinished *prometheus.CounterVec
	Moves        *prometheus.CounterVec
	RunSteps     prometheus.Histogram
	PathLength   prometheus.Histogram
	RunDuration  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RunsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mazerunner_runs_started_total",
			Help: "Total number of explorations started",
		}),
		RunsFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mazerunner_runs_finished_total",
				Help: "Total number of explorations finished, by outcome",
			},
			[]string{"outcome"},
		),
		Moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mazerunner_moves_total",
				Help: "Total number of runner moves, by action code",
			},
			[]string{"action"},
		),
		RunSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mazerunner_run_steps",
			Help:    "Exploration moves per successful run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		PathLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mazerunner_path_length",
			Help:    "Simplified path length per successful run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "mazerunner_run_duration_seconds",
			Help: "Duration of explorations",
		}),
	}

	for _, c := range []prometheus.Collector{m.RunsStarted, m.RunsFinished, m.Moves, m.RunSteps, m.PathLength, m.RunDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Outcome labels for RunsFinished.
const (
	OutcomeSolved       = "solved"
	OutcomeNotConverged = "not_converged"
	OutcomeInvariant    = "invariant_violation"
	OutcomeCanceled     = "canceled"
	OutcomeError        = "error"
)

// Outcome classifies a run failure into a bounded label set.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSolved
	case errors.Is(err, domain.ErrNotConverged):
		return OutcomeNotConverged
	case errors.Is(err, domain.ErrWallCollision):
		return OutcomeInvariant
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			m.RunsStarted.Inc()
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.Moves.WithLabelValues(string(e.Move.Action)).Inc()
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			m.RunsFinished.WithLabelValues(OutcomeSolved).Inc()
			m.RunSteps.Observe(float64(e.Steps))
			m.PathLength.Observe(float64(e.PathLength))
			m.RunDuration.Observe(e.Elapsed.Seconds())
		},
		OnRunFailed: func(ctx context.Context, e *domain.RunEvent) {
			m.RunsFinished.WithLabelValues(Outcome(e.Err)).Inc()
			m.RunDuration.Observe(e.Elapsed.Seconds())
		},
	}
}
