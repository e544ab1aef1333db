// Package config loads stmtql settings from a YAML file, STMTQL_ environment
// variables, and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/zoobzio/stmtql"
	"github.com/zoobzio/stmtql/dialects"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "stmtql.yaml"

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "STMTQL_"

// Config holds rendering settings.
type Config struct {
	Dialect          string `koanf:"dialect"`
	AlwaysQuote      bool   `koanf:"always_quote"`
	MaxSubqueryDepth int    `koanf:"max_subquery_depth"`
	Verbose          bool   `koanf:"verbose"`

	// File is the config file that was read, empty if none.
	File string `koanf:"-"`
}

// Load reads configuration. Precedence (highest to lowest):
// flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"dialect":            "postgres",
		"always_quote":       false,
		"max_subquery_depth": stmtql.MaxSubqueryDepth,
		"verbose":            false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, explicit or discovered
	used := cfgFile
	if used == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			used = DefaultFile
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: STMTQL_ALWAYS_QUOTE -> always_quote
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("loaded config",
		slog.String("file", cfg.File),
		slog.String("dialect", cfg.Dialect),
		slog.Bool("always_quote", cfg.AlwaysQuote),
		slog.Int("max_subquery_depth", cfg.MaxSubqueryDepth))
	return &cfg, nil
}

// Validate checks that the settings describe a usable renderer.
func (c *Config) Validate() error {
	if c.Dialect == "" {
		return fmt.Errorf("dialect is required")
	}
	if _, err := dialects.Lookup(c.Dialect); err != nil {
		return err
	}
	if c.MaxSubqueryDepth < 1 {
		return fmt.Errorf("max_subquery_depth must be at least 1, got %d", c.MaxSubqueryDepth)
	}
	return nil
}

// Renderer builds the configured dialect renderer.
func (c *Config) Renderer() (stmtql.Renderer, error) {
	opts := []stmtql.RenderOption{stmtql.WithMaxSubqueryDepth(c.MaxSubqueryDepth)}
	if c.AlwaysQuote {
		opts = append(opts, stmtql.AlwaysQuote())
	}
	return dialects.Lookup(c.Dialect, opts...)
}
