// Package config loads sqlporter configuration. Settings layer in
// priority order: built-in defaults, then an optional YAML config file,
// then SQLPORTER_* environment variables, then command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names looked up in the working directory.
const (
	ConfigFileName    = "sqlporter.yaml"
	ConfigFileNameAlt = "sqlporter.yml"
)

// Default configuration values.
const (
	DefaultTargetDialect = "e6"
	DefaultErrorLevel    = "raise"
	DefaultConcurrency   = 8
)

// Config is the resolved sqlporter configuration.
type Config struct {
	SourceDialect string `koanf:"source_dialect"`
	TargetDialect string `koanf:"target_dialect"`

	Pretty     bool   `koanf:"pretty"`
	Identify   bool   `koanf:"identify"`
	ErrorLevel string `koanf:"error_level"`
	CommentTag string `koanf:"comment_tag"`

	TwoPhaseScheme          bool `koanf:"two_phase_qualification"`
	SkipTranspilation       bool `koanf:"skip_transpilation"`
	TableAliasQualification bool `koanf:"table_alias_qualification"`

	// FunctionsFile points at the supported-functions JSON catalog.
	FunctionsFile string `koanf:"functions_file"`

	// Concurrency bounds parallel workers in batch mode.
	Concurrency int `koanf:"concurrency"`

	Verbose bool `koanf:"verbose"`
}

// Load resolves the configuration. cfgFile overrides the config file
// search; flags, when non-nil, contribute the values the user set
// explicitly (kebab-case flag names map to snake_case keys).
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"target_dialect": DefaultTargetDialect,
		"pretty":         true,
		"error_level":    DefaultErrorLevel,
		"concurrency":    DefaultConcurrency,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		cfgFile = findConfigFile(".")
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider("SQLPORTER_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SQLPORTER_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

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
	return &cfg, nil
}

// findConfigFile looks for sqlporter.yaml / sqlporter.yml in dir.
// Returns empty string when neither exists.
func findConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
