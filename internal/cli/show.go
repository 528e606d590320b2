package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/mazerunner/internal/presentation/tui"
	httpAdapter "github.com/aretw0/mazerunner/pkg/adapters/http"
)

// ShowOptions selects a stored run to print.
type ShowOptions struct {
	RunID      string
	ConfigPath string
	Overrides  Overrides
	JSON       bool
	Out        io.Writer
}

// Show loads a run from the configured store and prints its report.
func Show(ctx context.Context, opts ShowOptions) error {
	cfg, err := LoadConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}

	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	run, err := store.Load(ctx, opts.RunID)
	if err != nil {
		return fmt.Errorf("run %s: %w", opts.RunID, err)
	}

	if opts.JSON {
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(httpAdapter.NewRunResponse(run))
	}

	var render func(string) (string, error)
	if tui.IsTerminal(opts.Out) {
		render = tui.NewRenderer()
	}
	_, err = fmt.Fprint(opts.Out, tui.RenderReport(run, render))
	return err
}
