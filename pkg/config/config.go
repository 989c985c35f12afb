// Package config loads semls.toml.
package config

import (
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semls/pkg/index"
	"github.com/walteh/semls/pkg/semtok"
)

const FileName = "semls.toml"

type Config struct {
	LogLevel string        `toml:"log_level"`
	Include  []string      `toml:"include"`
	Exclude  []string      `toml:"exclude"`
	Tokens   TokensConfig  `toml:"tokens"`
	Watch    WatchConfig   `toml:"watch"`
	Metrics  MetricsConfig `toml:"metrics"`
	Tracing  TracingConfig `toml:"tracing"`
}

type TokensConfig struct {
	InitialCapacity int `toml:"initial_capacity"`
	// MaxTokens of zero disables the ceiling.
	MaxTokens int `toml:"max_tokens"`
}

type WatchConfig struct {
	Enabled          bool          `toml:"enabled"`
	Debounce         time.Duration `toml:"debounce"`
	ReparsePerSecond float64       `toml:"reparse_per_second"`
}

type MetricsConfig struct {
	Addr string `toml:"addr"`
}

type TracingConfig struct {
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

func Defaults() *Config {
	return &Config{
		LogLevel: "info",
		Include:  []string{"**/*.zc"},
		Exclude:  []string{".git", "node_modules"},
		Tokens: TokensConfig{
			InitialCapacity: semtok.DefaultInitialCapacity,
			MaxTokens:       1_000_000,
		},
		Watch: WatchConfig{
			Enabled:          true,
			Debounce:         300 * time.Millisecond,
			ReparsePerSecond: 20,
		},
	}
}

// Load reads the TOML file at path. A missing file yields the defaults;
// keys absent from the file keep their default values.
func Load(afs afero.Fs, path string) (*Config, error) {
	cfg := Defaults()

	data, err := afero.ReadFile(afs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, errors.Errorf("reading config %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, errors.Errorf("decoding config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		result = multierror.Append(result, errors.Errorf("log_level: %w", err))
	}
	if len(c.Include) == 0 {
		result = multierror.Append(result, errors.New("include: at least one pattern is required"))
	}
	if c.Tokens.InitialCapacity < 0 {
		result = multierror.Append(result, errors.Errorf("tokens.initial_capacity: must not be negative, got %d", c.Tokens.InitialCapacity))
	}
	if c.Tokens.MaxTokens < 0 {
		result = multierror.Append(result, errors.Errorf("tokens.max_tokens: must not be negative, got %d", c.Tokens.MaxTokens))
	}
	if c.Watch.Debounce < 0 {
		result = multierror.Append(result, errors.Errorf("watch.debounce: must not be negative, got %s", c.Watch.Debounce))
	}
	if c.Watch.ReparsePerSecond < 0 {
		result = multierror.Append(result, errors.Errorf("watch.reparse_per_second: must not be negative, got %v", c.Watch.ReparsePerSecond))
	}

	return result.ErrorOrNil()
}

// Level returns the configured zerolog level, falling back to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (c *Config) TokenOptions() semtok.Options {
	return semtok.Options{
		InitialCapacity: c.Tokens.InitialCapacity,
		MaxTokens:       c.Tokens.MaxTokens,
	}
}

// WatchOptions configures the workspace watcher for .zc files.
func (c *Config) WatchOptions() index.WatchOptions {
	return index.WatchOptions{
		Debounce:         c.Watch.Debounce,
		Exclude:          c.Exclude,
		Extensions:       []string{".zc"},
		ReparsePerSecond: c.Watch.ReparsePerSecond,
	}
}
