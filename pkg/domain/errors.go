package domain

import (
	"errors"
	"fmt"
)

// ErrWallCollision is the invariant violated when the runner is told to advance into a wall.
var ErrWallCollision = errors.New("advance into a wall")

// ErrNotConverged is returned when exploration exceeds its step budget without reaching the goal.
var ErrNotConverged = errors.New("exploration did not converge")

// ErrOutOfBounds is returned when a start or goal coordinate lies outside the maze.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// InvariantError reports an internal-consistency failure between sensing and the decision policy.
// It is fatal for the run.
type InvariantError struct {
	Step    int
	At      Coord
	Heading Orientation
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation at step %d: %v facing %s: %v", e.Step, e.At, e.Heading, ErrWallCollision)
}

func (e *InvariantError) Unwrap() error {
	return ErrWallCollision
}

// NotConvergedError carries how far the exploration got before giving up.
type NotConvergedError struct {
	Steps int
	Limit int
	Goal  Coord
}

func (e *NotConvergedError) Error() string {
	return fmt.Sprintf("goal %v not reached after %d steps (limit %d): %v", e.Goal, e.Steps, e.Limit, ErrNotConverged)
}

func (e *NotConvergedError) Unwrap() error {
	return ErrNotConverged
}

// CollaboratorError wraps a failure of an external collaborator (renderer, store, exporter).
// It never invalidates the run it was reported for.
type CollaboratorError struct {
	Collaborator string
	Op           string
	Err          error
}

func (e *CollaboratorError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s failed: %v", e.Collaborator, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Collaborator, e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// IsCollaboratorOnly reports whether every error joined in err is a CollaboratorError,
// meaning the run itself completed.
func IsCollaboratorOnly(err error) bool {
	if err == nil {
		return false
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if !IsCollaboratorOnly(e) {
				return false
			}
		}
		return true
	}
	var ce *CollaboratorError
	return errors.As(err, &ce)
}
