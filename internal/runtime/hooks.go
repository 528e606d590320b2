package runtime

import (
	"context"
	"time"

	"github.com/aretw0/mazerunner/pkg/domain"
)

func (e *Engine) base(t domain.EventType, runID string) domain.EventBase {
	return domain.EventBase{Timestamp: e.now(), Type: t, RunID: runID}
}

func (e *Engine) emitRunStart(ctx context.Context, req Request) {
	if e.hooks.OnRunStart == nil {
		return
	}
	e.hooks.OnRunStart(ctx, &domain.RunEvent{
		EventBase: e.base(domain.EventRunStart, req.RunID),
		Start:     req.Start,
		Goal:      req.Goal,
	})
}

func (e *Engine) emitStep(ctx context.Context, req Request, move domain.Move, sensed domain.Sensed, r *domain.Runner) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: e.base(domain.EventStep, req.RunID),
		Move:      move,
		Sensed:    sensed,
		Runner:    r.State(),
	})
}

func (e *Engine) emitRunComplete(ctx context.Context, req Request, run *domain.Run, began time.Time) {
	if e.hooks.OnRunComplete == nil {
		return
	}
	e.hooks.OnRunComplete(ctx, &domain.RunEvent{
		EventBase:  e.base(domain.EventRunComplete, req.RunID),
		Start:      req.Start,
		Goal:       req.Goal,
		Steps:      run.Steps(),
		PathLength: len(run.Path),
		Elapsed:    e.now().Sub(began),
	})
}

func (e *Engine) emitRunFailed(ctx context.Context, req Request, steps int, began time.Time, err error) {
	if e.hooks.OnRunFailed == nil {
		return
	}
	e.hooks.OnRunFailed(ctx, &domain.RunEvent{
		EventBase: e.base(domain.EventRunFailed, req.RunID),
		Start:     req.Start,
		Goal:      req.Goal,
		Steps:     steps,
		Elapsed:   e.now().Sub(began),
		Err:       err,
	})
}
