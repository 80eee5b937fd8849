// Package config holds the tutti CLI configuration.
package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/opal-lang/tutti/runtime/notation"
)

// Config holds all tutti configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Logging LoggingConfig `yaml:"logging"`
	Format  FormatConfig  `yaml:"format"`
	Limits  LimitsConfig  `yaml:"limits"`

	// Suggestions attaches "did you mean" hints to unresolved tokens.
	Suggestions bool `yaml:"suggestions"`
}

// CatalogConfig selects the instrument catalog.
type CatalogConfig struct {
	Path     string `yaml:"path"`     // YAML catalog document
	Database string `yaml:"database"` // SQLite database with the host schema; wins over Path
	Watch    bool   `yaml:"watch"`    // reload Path when it changes
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// FormatConfig configures canonical rendering.
type FormatConfig struct {
	SeparateDoublings bool `yaml:"separate_doublings"`
}

// LimitsConfig bounds notation input.
type LimitsConfig struct {
	MaxCount int `yaml:"max_count"`
}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "warn"},
		Limits:  LimitsConfig{MaxCount: notation.DefaultMaxCount},
	}
}

// Load reads configuration from a YAML file over the defaults, then applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("TUTTI_CATALOG"); path != "" {
		c.Catalog.Path = path
	}
	if level := os.Getenv("TUTTI_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Limits.MaxCount <= 0 {
		return fmt.Errorf("limits.max_count must be positive, got %d", c.Limits.MaxCount)
	}
	if !slices.Contains(ValidLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if c.Catalog.Watch && c.Catalog.Path == "" {
		return fmt.Errorf("catalog.watch requires catalog.path")
	}
	return nil
}
