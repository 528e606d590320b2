package cli

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/mazerunner"
	"github.com/aretw0/mazerunner/internal/config"
	httpAdapter "github.com/aretw0/mazerunner/pkg/adapters/http"
	"github.com/aretw0/mazerunner/pkg/adapters/mcp"
	"github.com/aretw0/mazerunner/pkg/observability"
	"github.com/aretw0/mazerunner/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServeHandler wires the HTTP API: solver, metrics on a private registry and the SSE event stream.
func NewServeHandler(cfg config.Config, store ports.RunStore, logger *slog.Logger) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	streams := httpAdapter.NewStreamManager()

	solver := newSolver(cfg, store, logger, cfg.Level() == slog.LevelDebug,
		mazerunner.WithLifecycleHooks(metrics.Hooks()),
		mazerunner.WithLifecycleHooks(streams.Hooks()),
	)

	return httpAdapter.NewHandler(solver, store,
		httpAdapter.WithStreams(streams),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		httpAdapter.WithLogger(logger),
	), nil
}

// NewMCPServer wires the MCP tool server.
func NewMCPServer(cfg config.Config, store ports.RunStore, logger *slog.Logger) *mcp.Server {
	solver := newSolver(cfg, store, logger, cfg.Level() == slog.LevelDebug)
	return mcp.NewServer(solver, store, logger)
}

// NewLogger returns the logger for long-running commands.
func NewLogger(cfg config.Config, debug bool) *slog.Logger {
	return createLogger(cfg.Level(), debug, false, nil)
}
