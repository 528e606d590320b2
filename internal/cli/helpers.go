package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/mazerunner/internal/logging"
	"github.com/aretw0/mazerunner/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// Text logs go to Stderr; in JSON mode they go to errOut so Stdout stays machine-readable.
func createLogger(level slog.Level, debug, jsonMode bool, errOut io.Writer) *slog.Logger {
	if debug {
		level = slog.LevelDebug
	}
	if jsonMode {
		return logging.NewJSON(errOut, level)
	}
	return logging.New(level)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Start", "run_id", e.RunID, "start", e.Start, "goal", e.Goal)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Step",
				"step", e.Move.Step,
				"from", e.Move.From,
				"action", e.Move.Action,
				"heading", e.Runner.Orientation,
			)
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Complete", "run_id", e.RunID, "steps", e.Steps, "path_length", e.PathLength, "elapsed", e.Elapsed)
		},
		OnRunFailed: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Failed", "run_id", e.RunID, "steps", e.Steps, "err", e.Err)
		},
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// handleExecutionError maps an interruption to a clean exit.
func handleExecutionError(err error, sig os.Signal, errOut io.Writer) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) && sig != nil {
		printSystemMessage(errOut, "Interrupted (%v).", sig)
		return nil
	}
	return err
}
