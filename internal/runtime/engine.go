package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/mazerunner/pkg/domain"
	"github.com/aretw0/mazerunner/pkg/maze"
)

// Engine drives a Runner through a Maze with the left-hand wall-following rule.
// It holds configuration only; every call to Explore or Run is independent.
type Engine struct {
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	renderer domain.Renderer
	maxSteps int
	heading  domain.Orientation
	now      func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRenderer sets the render hook called after every step and on completion.
func WithRenderer(r domain.Renderer) EngineOption {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithMaxSteps lowers the step budget. Values <= 0, or above 4*width*height, keep that default.
func WithMaxSteps(n int) EngineOption {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// WithStartHeading sets the runner's initial heading (default North).
func WithStartHeading(o domain.Orientation) EngineOption {
	return func(e *Engine) {
		e.heading = o
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		heading: domain.North,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Request identifies one exploration.
type Request struct {
	RunID string
	Start domain.Coord
	Goal  domain.Coord
	// MaxSteps lowers the engine's step budget when > 0; it never raises it.
	MaxSteps int
}

// Exploration is the raw outcome of Explore.
type Exploration struct {
	Trace []domain.Coord
	Moves []domain.Move
	Final domain.RunnerState
	// RenderErrs holds renderer failures; they never abort exploration.
	RenderErrs []error
}

// StepLimit returns the step budget for m: the configured value, or 4*width*height.
// Motion depends only on (cell, heading), so a run that exceeds the number of such
// states without reaching the goal is cycling.
// Configured limits above that bound are clamped to it.
func (e *Engine) StepLimit(m *maze.Maze) int {
	cycle := 4 * m.Width() * m.Height()
	if e.maxSteps > 0 && e.maxSteps < cycle {
		return e.maxSteps
	}
	return cycle
}

// limitFor applies a per-request limit, which can only lower StepLimit.
func (e *Engine) limitFor(m *maze.Maze, req Request) int {
	limit := e.StepLimit(m)
	if req.MaxSteps > 0 && req.MaxSteps < limit {
		return req.MaxSteps
	}
	return limit
}

// Decide applies the fixed priority: left, straight, right, turn around.
func Decide(s domain.Sensed) domain.Action {
	switch {
	case !s.Left:
		return domain.ActionLeftForward
	case !s.Front:
		return domain.ActionForward
	case !s.Right:
		return domain.ActionRightForward
	default:
		return domain.ActionTurnAround
	}
}

// Explore moves a fresh runner from req.Start until it stands on req.Goal.
// The maze trace is reset first, then receives the start cell and every cell entered.
func (e *Engine) Explore(ctx context.Context, m *maze.Maze, req Request) (*Exploration, error) {
	if err := checkBounds(m, req); err != nil {
		return nil, err
	}

	began := e.now()
	limit := e.limitFor(m, req)
	runner := domain.NewRunner(req.Start, e.heading)
	ex := &Exploration{}

	m.ResetTrace()
	m.Record(req.Start)

	e.emitRunStart(ctx, req)
	e.logger.Debug("exploration started", "run_id", req.RunID, "start", req.Start, "goal", req.Goal, "limit", limit)
	e.render(ctx, m, req, runner, 0, "0", nil, ex)

	for runner.Position() != req.Goal {
		if err := ctx.Err(); err != nil {
			e.emitRunFailed(ctx, req, len(ex.Moves), began, err)
			return nil, err
		}
		if len(ex.Moves) >= limit {
			err := &domain.NotConvergedError{Steps: len(ex.Moves), Limit: limit, Goal: req.Goal}
			e.emitRunFailed(ctx, req, len(ex.Moves), began, err)
			return nil, err
		}

		step := len(ex.Moves) + 1
		from := runner.Position()
		sensed := m.Sense(runner)
		action := Decide(sensed)

		for _, t := range action.Turns() {
			runner.Turn(t)
		}
		if err := forward(m, runner, step); err != nil {
			e.logger.Error("wall-sensing invariant violated", "run_id", req.RunID, "error", err)
			e.emitRunFailed(ctx, req, len(ex.Moves), began, err)
			return nil, err
		}

		move := domain.Move{Step: step, From: from, Action: action}
		ex.Moves = append(ex.Moves, move)
		m.Record(runner.Position())

		e.emitStep(ctx, req, move, sensed, runner)
		e.render(ctx, m, req, runner, step, fmt.Sprint(step), nil, ex)
	}

	ex.Trace = m.Trace()
	ex.Final = runner.State()
	return ex, nil
}

// Run explores, simplifies the trace and emits the final frame.
// A non-nil Run may come with an error that only joins renderer CollaboratorErrors.
func (e *Engine) Run(ctx context.Context, m *maze.Maze, req Request) (*domain.Run, error) {
	began := e.now()

	ex, err := e.Explore(ctx, m, req)
	if err != nil {
		return nil, err
	}

	path := Simplify(ex.Trace)

	run := &domain.Run{
		ID:        req.RunID,
		MazeName:  m.Name(),
		Width:     m.Width(),
		Height:    m.Height(),
		Start:     req.Start,
		Goal:      req.Goal,
		Trace:     ex.Trace,
		Moves:     ex.Moves,
		Path:      path,
		CreatedAt: began,
	}

	final := domain.NewRunner(ex.Final.Position, ex.Final.Orientation)
	e.render(ctx, m, req, final, len(ex.Moves), domain.FinalLabel, path, ex)

	e.emitRunComplete(ctx, req, run, began)
	e.logger.Debug("exploration complete",
		"run_id", req.RunID,
		"steps", run.Steps(),
		"path_length", len(run.Path),
		"score", run.Score(),
	)

	return run, errors.Join(ex.RenderErrs...)
}

// forward advances r unless a wall is ahead, which would mean the decision
// policy and the wall sensing disagree.
func forward(m *maze.Maze, r *domain.Runner, step int) error {
	if m.Sense(r).Front {
		return &domain.InvariantError{Step: step, At: r.Position(), Heading: r.Orientation()}
	}
	r.Advance()
	return nil
}

func checkBounds(m *maze.Maze, req Request) error {
	if !m.InBounds(req.Start) {
		return fmt.Errorf("start %v in %dx%d maze: %w", req.Start, m.Width(), m.Height(), domain.ErrOutOfBounds)
	}
	if !m.InBounds(req.Goal) {
		return fmt.Errorf("goal %v in %dx%d maze: %w", req.Goal, m.Width(), m.Height(), domain.ErrOutOfBounds)
	}
	return nil
}

func (e *Engine) render(ctx context.Context, m *maze.Maze, req Request, r *domain.Runner, step int, label string, path []domain.Coord, ex *Exploration) {
	if e.renderer == nil {
		return
	}
	frame := domain.Frame{
		Maze:   m.Name(),
		Runner: r.State(),
		Goal:   req.Goal,
		Step:   step,
		Label:  label,
		Trace:  m.TraceView(),
		Path:   path,
	}
	if err := e.renderer.Render(ctx, frame); err != nil {
		e.logger.Warn("render hook failed", "run_id", req.RunID, "label", label, "error", err)
		ex.RenderErrs = append(ex.RenderErrs, &domain.CollaboratorError{
			Collaborator: "renderer",
			Op:           "frame " + label,
			Err:          err,
		})
	}
}
