package mazerunner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/mazerunner/internal/runtime"
	"github.com/aretw0/mazerunner/pkg/domain"
	"github.com/aretw0/mazerunner/pkg/maze"
	"github.com/aretw0/mazerunner/pkg/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Solver is the high-level entry point for the mazerunner library.
// It wraps the internal exploration engine and an optional RunStore.
type Solver struct {
	engine      *runtime.Engine
	store       ports.RunStore
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	renderer    domain.Renderer
	maxSteps    int
	concurrency int
	newID       func() string
}

// Option defines a functional option for configuring the Solver.
type Option func(*Solver)

// WithLifecycleHooks registers observability hooks. Repeated calls compose in order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Solver) {
		s.hooks = domain.MergeHooks(s.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger for the solver.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// WithRenderer sets the render hook invoked after every step.
func WithRenderer(r domain.Renderer) Option {
	return func(s *Solver) {
		s.renderer = r
	}
}

// WithMaxSteps caps the number of exploration moves. Zero keeps the default.
func WithMaxSteps(n int) Option {
	return func(s *Solver) {
		s.maxSteps = n
	}
}

// WithStore persists every successful run.
func WithStore(store ports.RunStore) Option {
	return func(s *Solver) {
		s.store = store
	}
}

// WithConcurrency bounds the number of parallel explorations in SolveBatch.
func WithConcurrency(n int) Option {
	return func(s *Solver) {
		s.concurrency = n
	}
}

// WithIDGenerator overrides how run IDs are minted (default: random UUID).
func WithIDGenerator(fn func() string) Option {
	return func(s *Solver) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New initializes a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{
		concurrency: 4,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.concurrency < 1 {
		s.concurrency = 1
	}

	s.engine = runtime.NewEngine(
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithLogger(s.logger),
		runtime.WithRenderer(s.renderer),
		runtime.WithMaxSteps(s.maxSteps),
	)
	return s
}

// Store returns the configured RunStore, or nil.
func (s *Solver) Store() ports.RunStore {
	return s.store
}

// DefaultStart is the south-west corner, (0, 0) for every maze.
// It takes m only to mirror DefaultGoal.
func DefaultStart(_ *maze.Maze) domain.Coord {
	return domain.Coord{X: 0, Y: 0}
}

// DefaultGoal is the north-east corner.
func DefaultGoal(m *maze.Maze) domain.Coord {
	return domain.Coord{X: m.Width() - 1, Y: m.Height() - 1}
}

// Job is one maze to solve. Nil Start or Goal fall back to the corner defaults.
type Job struct {
	Maze  *maze.Maze
	Start *domain.Coord
	Goal  *domain.Coord
	// MaxSteps lowers the solver's step limit for this job when > 0.
	MaxSteps int
}

func (j Job) endpoints() (domain.Coord, domain.Coord) {
	start, goal := DefaultStart(j.Maze), DefaultGoal(j.Maze)
	if j.Start != nil {
		start = *j.Start
	}
	if j.Goal != nil {
		goal = *j.Goal
	}
	return start, goal
}

// Solve explores the maze and returns the finished run.
//
// A non-nil run may be returned together with an error when only collaborators
// (renderer, store) failed; check with domain.IsCollaboratorOnly.
func (s *Solver) Solve(ctx context.Context, m *maze.Maze, start, goal *domain.Coord) (*domain.Run, error) {
	return s.SolveJob(ctx, Job{Maze: m, Start: start, Goal: goal})
}

// SolveJob is Solve with per-job overrides.
func (s *Solver) SolveJob(ctx context.Context, job Job) (*domain.Run, error) {
	if job.Maze == nil {
		return nil, fmt.Errorf("solve: nil maze")
	}
	start, goal := job.endpoints()

	run, err := s.engine.Run(ctx, job.Maze, runtime.Request{
		RunID:    s.newID(),
		Start:    start,
		Goal:     goal,
		MaxSteps: job.MaxSteps,
	})
	if run == nil {
		return nil, err
	}

	errs := []error{err}
	if s.store != nil {
		if saveErr := s.store.Save(ctx, run); saveErr != nil {
			s.logger.Warn("failed to persist run", "run_id", run.ID, "error", saveErr)
			errs = append(errs, &domain.CollaboratorError{Collaborator: "store", Op: "save", Err: saveErr})
		}
	}
	return run, errors.Join(errs...)
}

// ShortestPath returns the simplified path from start to goal.
// Despite the name the result is the loop-free reduction of the wall-following
// trace, not necessarily a graph-theoretic shortest path.
func (s *Solver) ShortestPath(ctx context.Context, m *maze.Maze, start, goal *domain.Coord) ([]domain.Coord, error) {
	run, err := s.Solve(ctx, m, start, goal)
	if run == nil {
		return nil, err
	}
	if err != nil {
		s.logger.Debug("path computed with collaborator errors", "run_id", run.ID, "error", err)
	}
	return run.Path, nil
}

// SolveBatch solves independent jobs in parallel, bounded by WithConcurrency.
// Results are index-aligned with jobs. The first hard failure cancels the rest;
// collaborator-only errors are joined and returned alongside the runs.
// Each job explores a clone of its maze, so jobs may share one *maze.Maze;
// the caller's maze trace is left untouched.
func (s *Solver) SolveBatch(ctx context.Context, jobs []Job) ([]*domain.Run, error) {
	runs := make([]*domain.Run, len(jobs))
	soft := make([]error, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, job := range jobs {
		if job.Maze != nil {
			job.Maze = job.Maze.Clone()
		}
		g.Go(func() error {
			run, err := s.SolveJob(gctx, job)
			if run == nil {
				return fmt.Errorf("job %d: %w", i, err)
			}
			runs[i] = run
			soft[i] = err
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return runs, err
	}
	return runs, errors.Join(soft...)
}
