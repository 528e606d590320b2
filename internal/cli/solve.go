package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/mazerunner"
	"github.com/aretw0/mazerunner/internal/config"
	"github.com/aretw0/mazerunner/internal/mazefile"
	"github.com/aretw0/mazerunner/internal/presentation/tui"
	httpAdapter "github.com/aretw0/mazerunner/pkg/adapters/http"
	"github.com/aretw0/mazerunner/pkg/domain"
	"github.com/google/uuid"
)

// SolveOptions contains all the configuration for the solve command.
type SolveOptions struct {
	MazePath   string
	ConfigPath string
	Start      string
	Goal       string
	SaveFrames bool
	Display    bool
	Delay      time.Duration
	JSON       bool
	Debug      bool
	Overrides  Overrides

	// RunID fixes the run identifier; a UUID is generated when empty.
	RunID string

	Out    io.Writer
	ErrOut io.Writer
}

func (o *SolveOptions) defaults() {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.ErrOut == nil {
		o.ErrOut = os.Stderr
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
}

// Solve parses the maze, explores it and prints the report (or JSON) to opts.Out.
// Collaborator failures are printed as warnings and do not fail the command.
func Solve(ctx context.Context, opts SolveOptions) (*domain.Run, error) {
	opts.defaults()

	cfg, err := LoadConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return nil, err
	}
	logger := createLogger(cfg.Level(), opts.Debug, opts.JSON, opts.ErrOut)

	m, err := mazefile.ParseFile(opts.MazePath)
	if err != nil {
		return nil, err
	}

	start, warn := resolveEndpoint(opts.Start, mazerunner.DefaultStart(m), m.InBounds)
	if warn != "" {
		printSystemMessage(opts.ErrOut, "Warning: start %s", warn)
	}
	goal, warn := resolveEndpoint(opts.Goal, mazerunner.DefaultGoal(m), m.InBounds)
	if warn != "" {
		printSystemMessage(opts.ErrOut, "Warning: goal %s", warn)
	}

	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			logger.Warn("failed to close store", "error", cerr)
		}
	}()

	var frameOpts []tui.FrameOption
	if opts.Display && !opts.JSON {
		if tui.IsTerminal(opts.Out) {
			tui.PrintBanner(opts.Out)
		}
		frameOpts = append(frameOpts, tui.WithOutput(opts.Out), tui.WithDelay(opts.Delay))
	}
	if opts.SaveFrames {
		frameOpts = append(frameOpts, tui.WithSaveDir(filepath.Join(cfg.OutDir, opts.RunID, "frames")))
	}

	extra := []mazerunner.Option{
		mazerunner.WithIDGenerator(func() string { return opts.RunID }),
	}
	if len(frameOpts) > 0 {
		extra = append(extra, mazerunner.WithRenderer(tui.NewFrameRenderer(m, frameOpts...)))
	}

	solver := newSolver(cfg, store, logger, opts.Debug, extra...)
	run, err := solver.Solve(ctx, m, &start, &goal)
	if run == nil {
		return nil, err
	}

	var warnings []string
	if err != nil {
		warnings = strings.Split(err.Error(), "\n")
		for _, w := range warnings {
			printSystemMessage(opts.ErrOut, "Warning: %s", w)
		}
	}

	if opts.JSON {
		resp := httpAdapter.NewRunResponse(run)
		resp.Warnings = warnings
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return run, fmt.Errorf("failed to write result: %w", err)
		}
		return run, nil
	}

	var render func(string) (string, error)
	if tui.IsTerminal(opts.Out) {
		render = tui.NewRenderer()
	}
	fmt.Fprint(opts.Out, tui.RenderReport(run, render))
	if cfg.Store == config.StoreFile {
		printSystemMessage(opts.ErrOut, "Run saved to %s", filepath.Join(cfg.OutDir, run.ID))
	}
	return run, nil
}

// RunSolve is the solve command entrypoint. It installs signal handling and maps
// interruptions to a clean exit.
func RunSolve(opts SolveOptions) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	_, err := Solve(sigCtx, opts)
	return handleExecutionError(err, sigCtx.Signal(), opts.ErrOut)
}
