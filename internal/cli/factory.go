package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/mazerunner"
	"github.com/aretw0/mazerunner/internal/config"
	"github.com/aretw0/mazerunner/pkg/adapters/file"
	"github.com/aretw0/mazerunner/pkg/adapters/memory"
	"github.com/aretw0/mazerunner/pkg/adapters/redis"
	"github.com/aretw0/mazerunner/pkg/domain"
	"github.com/aretw0/mazerunner/pkg/ports"
)

// Overrides are flag values that win over the config file when set.
type Overrides struct {
	MaxSteps int
	Store    string
	OutDir   string
	LogLevel string
}

// LoadConfig reads the layered config and applies flag overrides.
func LoadConfig(path string, o Overrides) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if o.MaxSteps > 0 {
		cfg.MaxSteps = o.MaxSteps
	}
	if o.Store != "" {
		cfg.Store = o.Store
	}
	if o.OutDir != "" {
		cfg.OutDir = o.OutDir
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	return cfg, cfg.Validate()
}

// OpenStore builds the RunStore selected by cfg.Store.
// The returned close function is never nil.
func OpenStore(ctx context.Context, cfg config.Config) (ports.RunStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreMemory, "":
		return memory.NewStore(), noop, nil
	case config.StoreFile:
		return file.New(cfg.OutDir), noop, nil
	case config.StoreRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, noop, fmt.Errorf("redis store at %s: %w", cfg.Redis.Addr, err)
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// newSolver wires the solver used by every command.
func newSolver(cfg config.Config, store ports.RunStore, logger *slog.Logger, debug bool, extra ...mazerunner.Option) *mazerunner.Solver {
	opts := []mazerunner.Option{
		mazerunner.WithLogger(logger),
		mazerunner.WithStore(store),
		mazerunner.WithMaxSteps(cfg.MaxSteps),
		mazerunner.WithConcurrency(cfg.Concurrency),
	}
	if debug {
		opts = append(opts, mazerunner.WithLifecycleHooks(createDebugHooks(logger)))
	}
	return mazerunner.New(append(opts, extra...)...)
}

// resolveEndpoint parses a --start/--goal value and falls back to def when it is
// missing, malformed or outside the maze. The returned warning is empty when raw was used.
func resolveEndpoint(raw string, def domain.Coord, inBounds func(domain.Coord) bool) (domain.Coord, string) {
	if raw == "" {
		return def, ""
	}
	c, err := domain.ParseCoord(raw)
	if err != nil {
		return def, fmt.Sprintf("%v; using %s", err, def)
	}
	if !inBounds(c) {
		return def, fmt.Sprintf("%s is outside the maze; using %s", c, def)
	}
	return c, ""
}
