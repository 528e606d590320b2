package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/mazerunner/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SampleRun builds a small finished run for store tests.
func SampleRun(id string) *domain.Run {
	return &domain.Run{
		ID:       id,
		MazeName: "contract",
		Width:    2,
		Height:   2,
		Start:    domain.Coord{X: 0, Y: 0},
		Goal:     domain.Coord{X: 1, Y: 1},
		Trace: []domain.Coord{
			{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1},
		},
		Moves: []domain.Move{
			{Step: 1, From: domain.Coord{X: 0, Y: 0}, Action: domain.ActionForward},
			{Step: 2, From: domain.Coord{X: 0, Y: 1}, Action: domain.ActionTurnAround},
			{Step: 3, From: domain.Coord{X: 0, Y: 0}, Action: domain.ActionLeftForward},
			{Step: 4, From: domain.Coord{X: 1, Y: 0}, Action: domain.ActionLeftForward},
		},
		Path:      []domain.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// RunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	runID := "contract-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		run := SampleRun(runID)

		err := store.Save(ctx, run)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, run.ID, loaded.ID)
		assert.Equal(t, run.MazeName, loaded.MazeName)
		assert.Equal(t, run.Trace, loaded.Trace)
		assert.Equal(t, run.Moves, loaded.Moves)
		assert.Equal(t, run.Path, loaded.Path)
		assert.True(t, run.CreatedAt.Equal(loaded.CreatedAt))
		assert.InDelta(t, run.Score(), loaded.Score(), 1e-9)
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		loaded.Path[0] = domain.Coord{X: 99, Y: 99}

		again, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, domain.Coord{X: 0, Y: 0}, again.Path[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, SampleRun(runID))
		require.NoError(t, err)

		err = store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		require.NoError(t, store.Save(ctx, SampleRun(id1)))
		require.NoError(t, store.Save(ctx, SampleRun(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
