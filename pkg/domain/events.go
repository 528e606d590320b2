package domain

import (
	"context"
	"time"
)

// FinalLabel is the label of the frame emitted once the simplified path is known.
const FinalLabel = "final"

// Frame is what a render hook receives: the runner, the goal and a label.
// Path is only set on the final frame.
type Frame struct {
	Maze   string      `json:"maze,omitempty"`
	Runner RunnerState `json:"runner"`
	Goal   Coord       `json:"goal"`
	Step   int         `json:"step"`
	Label  string      `json:"label"`
	// Trace is the exploration so far, start included. It shares storage with the
	// maze and must be treated as read-only.
	Trace []Coord `json:"trace,omitempty"`
	Path  []Coord `json:"path,omitempty"`
}

// Final reports whether this is the completion frame.
func (f Frame) Final() bool {
	return f.Label == FinalLabel
}

// Renderer is the optional visualization collaborator.
// The engine never depends on its side effects; a failing Renderer does not abort the run.
type Renderer interface {
	Render(ctx context.Context, frame Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, frame Frame) error

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, frame Frame) error {
	return f(ctx, frame)
}

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart    EventType = "run_start"
	EventStep        EventType = "step"
	EventRunComplete EventType = "run_complete"
	EventRunFailed   EventType = "run_failed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
}

// RunEvent marks the start, completion or failure of an exploration.
type RunEvent struct {
	EventBase
	Start      Coord         `json:"start"`
	Goal       Coord         `json:"goal"`
	Steps      int           `json:"steps"`
	PathLength int           `json:"path_length,omitempty"`
	Elapsed    time.Duration `json:"elapsed,omitempty"`
	Err        error         `json:"-"`
}

// StepEvent is emitted after every move.
type StepEvent struct {
	EventBase
	Move   Move        `json:"move"`
	Sensed Sensed      `json:"sensed"`
	Runner RunnerState `json:"runner"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRunStart    func(context.Context, *RunEvent)
	OnStep        func(context.Context, *StepEvent)
	OnRunComplete func(context.Context, *RunEvent)
	OnRunFailed   func(context.Context, *RunEvent)
}

// MergeHooks returns hooks that call each set in order.
func MergeHooks(all ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *RunEvent) {
			for _, h := range all {
				if h.OnRunStart != nil {
					h.OnRunStart(ctx, e)
				}
			}
		},
		OnStep: func(ctx context.Context, e *StepEvent) {
			for _, h := range all {
				if h.OnStep != nil {
					h.OnStep(ctx, e)
				}
			}
		},
		OnRunComplete: func(ctx context.Context, e *RunEvent) {
			for _, h := range all {
				if h.OnRunComplete != nil {
					h.OnRunComplete(ctx, e)
				}
			}
		},
		OnRunFailed: func(ctx context.Context, e *RunEvent) {
			for _, h := range all {
				if h.OnRunFailed != nil {
					h.OnRunFailed(ctx, e)
				}
			}
		},
	}
}
