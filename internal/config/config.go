// Package config resolves solver settings from defaults, an optional YAML file
// and MAZERUNNER_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "MAZERUNNER_"
	// EnvConfigFile names the YAML file when no path is given explicitly.
	EnvConfigFile = EnvPrefix + "CONFIG"
	// DefaultFile is read from the working directory when present.
	DefaultFile = "mazerunner.yaml"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config holds every tunable of the CLI and servers.
type Config struct {
	MaxSteps    int         `mapstructure:"max_steps" yaml:"max_steps"`
	Concurrency int         `mapstructure:"concurrency" yaml:"concurrency"`
	Store       string      `mapstructure:"store" yaml:"store"`
	OutDir      string      `mapstructure:"out_dir" yaml:"out_dir"`
	LogLevel    string      `mapstructure:"log_level" yaml:"log_level"`
	Port        string      `mapstructure:"port" yaml:"port"`
	Redis       RedisConfig `mapstructure:"redis" yaml:"redis"`
}

// RedisConfig configures the redis run store.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxSteps:    0,
		Concurrency: 4,
		Store:       StoreMemory,
		OutDir:      ".mazerunner/runs",
		LogLevel:    "info",
		Port:        "8080",
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "mazerunner:run:",
		},
	}
}

// envKeys maps environment suffixes to dotted config keys.
var envKeys = map[string]string{
	"MAX_STEPS":      "max_steps",
	"CONCURRENCY":    "concurrency",
	"STORE":          "store",
	"OUT_DIR":        "out_dir",
	"LOG_LEVEL":      "log_level",
	"PORT":           "port",
	"REDIS_ADDR":     "redis.addr",
	"REDIS_PASSWORD": "redis.password",
	"REDIS_DB":       "redis.db",
	"REDIS_TTL":      "redis.ttl",
	"REDIS_PREFIX":   "redis.prefix",
}

// Load resolves the configuration using the process environment.
// An empty path falls back to $MAZERUNNER_CONFIG, then to DefaultFile if it exists.
func Load(path string) (Config, error) {
	return LoadWith(path, os.LookupEnv)
}

// LoadWith is Load with an injectable environment lookup.
func LoadWith(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	raw := map[string]any{}

	explicit := path != ""
	if !explicit {
		if p, ok := lookup(EnvConfigFile); ok && p != "" {
			path, explicit = p, true
		} else {
			path = DefaultFile
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No default file: defaults plus env only.
	default:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	for suffix, key := range envKeys {
		if v, ok := lookup(EnvPrefix + suffix); ok {
			setPath(raw, key, v)
		}
	}

	if err := decode(raw, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// setPath stores v under a dotted key, creating nested maps as needed.
func setPath(m map[string]any, key, v string) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

// Validate rejects values no component can act on.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("invalid store %q: expected memory, file or redis", c.Store)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be >= 0, got %d", c.MaxSteps)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", c.Concurrency)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must be >= 0, got %s", c.Redis.TTL)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() slog.Level {
	lvl, _ := ParseLevel(c.LogLevel)
	return lvl
}

// ParseLevel accepts debug, info, warn and error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}
