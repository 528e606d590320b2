package observability_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/mazerunner/internal/runtime"
	"github.com/aretw0/mazerunner/pkg/domain"
	"github.com/aretw0/mazerunner/pkg/maze"
	"github.com/aretw0/mazerunner/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	engine := runtime.NewEngine(runtime.WithLifecycleHooks(metrics.Hooks()))

	// 2x2 dead end: F, LLF, LF, LF.
	m, err := maze.New(2, 2)
	require.NoError(t, err)
	m.AddVerticalWall(1, 1)

	_, err = engine.Run(context.Background(), m, runtime.Request{
		Start: domain.Coord{X: 0, Y: 0},
		Goal:  domain.Coord{X: 1, Y: 1},
	})
	require.NoError(t, err)

	// Walled-off goal does not converge.
	blocked, err := maze.New(3, 1)
	require.NoError(t, err)
	blocked.AddVerticalWall(2, 0)
	_, err = engine.Run(context.Background(), blocked, runtime.Request{
		Start: domain.Coord{X: 0, Y: 0},
		Goal:  domain.Coord{X: 2, Y: 0},
	})
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RunsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsFinished.WithLabelValues(observability.OutcomeSolved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsFinished.WithLabelValues(observability.OutcomeNotConverged)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Moves.WithLabelValues("F")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Moves.WithLabelValues("LF")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.RunSteps))
}

func TestMetrics_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, observability.OutcomeSolved},
		{&domain.NotConvergedError{Steps: 4, Limit: 4}, observability.OutcomeNotConverged},
		{&domain.InvariantError{Step: 1}, observability.OutcomeInvariant},
		{fmt.Errorf("explore: %w", context.Canceled), observability.OutcomeCanceled},
		{context.DeadlineExceeded, observability.OutcomeCanceled},
		{domain.ErrOutOfBounds, observability.OutcomeError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, observability.Outcome(tt.err), "%v", tt.err)
	}
}
