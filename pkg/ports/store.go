package ports

import (
	"context"

	"github.com/aretw0/mazerunner/pkg/domain"
)

// RunStore defines the interface for persisting finished runs.
// Runs are immutable once saved; saving an existing ID replaces it.
type RunStore interface {
	// Save persists the run under run.ID.
	Save(ctx context.Context, run *domain.Run) error

	// Load retrieves a run by ID.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (*domain.Run, error)

	// Delete removes a run. Deleting a missing run is not an error.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of all stored runs.
	List(ctx context.Context) ([]string, error)
}
