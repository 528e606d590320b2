package mazerunner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/mazerunner"
	"github.com/aretw0/mazerunner/pkg/adapters/memory"
	"github.com/aretw0/mazerunner/pkg/domain"
	"github.com/aretw0/mazerunner/pkg/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deadEnd is a 2x2 maze with a wall between the two northern cells.
func deadEnd(t *testing.T) *maze.Maze {
	t.Helper()
	m, err := maze.New(2, 2)
	require.NoError(t, err)
	m.AddVerticalWall(1, 1)
	m.SetName("dead-end")
	return m
}

type failingStore struct {
	*memory.Store
}

func (failingStore) Save(ctx context.Context, run *domain.Run) error {
	return errors.New("disk full")
}

func TestSolve(t *testing.T) {
	store := memory.NewStore()
	solver := mazerunner.New(
		mazerunner.WithStore(store),
		mazerunner.WithIDGenerator(func() string { return "fixed" }),
	)

	run, err := solver.Solve(context.Background(), deadEnd(t), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "fixed", run.ID)
	assert.Equal(t, "dead-end", run.MazeName)
	assert.Equal(t, domain.Coord{X: 1, Y: 1}, run.Goal)
	assert.Equal(t, "FLLFLFLF", run.Actions())
	assert.Equal(t, []domain.Coord{{}, {X: 1}, {X: 1, Y: 1}}, run.Path)
	assert.InDelta(t, 4.0, run.Score(), 1e-9)

	stored, err := store.Load(context.Background(), "fixed")
	require.NoError(t, err)
	assert.Equal(t, run.Path, stored.Path)
}

func TestShortestPath(t *testing.T) {
	solver := mazerunner.New()

	t.Run("Defaults", func(t *testing.T) {
		assert.Equal(t, domain.Coord{}, mazerunner.DefaultStart(deadEnd(t)))
		assert.Equal(t, domain.Coord{X: 1, Y: 1}, mazerunner.DefaultGoal(deadEnd(t)))

		path, err := solver.ShortestPath(context.Background(), deadEnd(t), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []domain.Coord{{}, {X: 1}, {X: 1, Y: 1}}, path)
	})

	t.Run("Start Equals Goal", func(t *testing.T) {
		c := domain.Coord{X: 1}
		path, err := solver.ShortestPath(context.Background(), deadEnd(t), &c, &c)
		require.NoError(t, err)
		assert.Equal(t, []domain.Coord{c}, path)
	})

	t.Run("Out Of Bounds", func(t *testing.T) {
		goal := domain.Coord{X: 2, Y: 0}
		_, err := solver.ShortestPath(context.Background(), deadEnd(t), nil, &goal)
		assert.ErrorIs(t, err, domain.ErrOutOfBounds)
	})
}

func TestSolve_StoreFailureKeepsRun(t *testing.T) {
	solver := mazerunner.New(mazerunner.WithStore(failingStore{memory.NewStore()}))

	run, err := solver.Solve(context.Background(), deadEnd(t), nil, nil)
	require.NotNil(t, run)
	require.Error(t, err)
	assert.True(t, domain.IsCollaboratorOnly(err))

	var ce *domain.CollaboratorError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "store", ce.Collaborator)
	assert.Len(t, run.Path, 3)

	path, err := solver.ShortestPath(context.Background(), deadEnd(t), nil, nil)
	require.NoError(t, err)
	assert.Len(t, path, 3)
}

func TestSolve_NilMaze(t *testing.T) {
	_, err := mazerunner.New().Solve(context.Background(), nil, nil, nil)
	assert.Error(t, err)
}

func TestSolveBatch(t *testing.T) {
	solver := mazerunner.New(mazerunner.WithConcurrency(2))

	open, err := maze.New(3, 3)
	require.NoError(t, err)

	jobs := []mazerunner.Job{
		{Maze: deadEnd(t)},
		{Maze: open},
		{Maze: deadEnd(t), Goal: &domain.Coord{X: 0, Y: 1}},
	}
	runs, err := solver.SolveBatch(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	assert.Equal(t, domain.Coord{X: 1, Y: 1}, runs[0].Goal)
	assert.Equal(t, domain.Coord{X: 2, Y: 2}, runs[1].Goal)
	assert.Equal(t, []domain.Coord{{}, {Y: 1}}, runs[2].Path)
	assert.NotEqual(t, runs[0].ID, runs[1].ID)

	t.Run("Shared Maze", func(t *testing.T) {
		shared, err := maze.New(20, 20)
		require.NoError(t, err)
		for x := 0; x < 19; x += 2 {
			shared.AddHorizontalWall(x, 10)
		}

		jobs := make([]mazerunner.Job, 16)
		for i := range jobs {
			jobs[i] = mazerunner.Job{Maze: shared, Goal: &domain.Coord{X: 19, Y: i}}
		}

		runs, err := mazerunner.New(mazerunner.WithConcurrency(8)).SolveBatch(context.Background(), jobs)
		require.NoError(t, err)
		for i, run := range runs {
			require.NotNil(t, run, "job %d", i)
			assert.Equal(t, domain.Coord{}, run.Trace[0], "job %d", i)
			assert.Equal(t, domain.Coord{X: 19, Y: i}, run.Path[len(run.Path)-1], "job %d", i)
		}
		assert.Zero(t, shared.TraceLen())
	})

	t.Run("Hard Failure", func(t *testing.T) {
		jobs := []mazerunner.Job{
			{Maze: deadEnd(t)},
			{Maze: deadEnd(t), MaxSteps: 1},
		}
		_, err := solver.SolveBatch(context.Background(), jobs)
		assert.ErrorIs(t, err, domain.ErrNotConverged)
		assert.ErrorContains(t, err, "job 1")
	})
}
