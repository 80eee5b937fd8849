package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tutti.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.Limits.MaxCount)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.False(t, cfg.Format.SeparateDoublings)
}

func TestLoad(t *testing.T) {
	t.Setenv("TUTTI_CATALOG", "")
	t.Setenv("TUTTI_LOG_LEVEL", "")

	path := writeConfig(t, `
catalog:
  path: orchestra.yaml
  watch: true
logging:
  level: debug
  development: true
format:
  separate_doublings: true
suggestions: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "orchestra.yaml", cfg.Catalog.Path)
	assert.True(t, cfg.Catalog.Watch)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.True(t, cfg.Format.SeparateDoublings)
	assert.True(t, cfg.Suggestions)
	assert.Equal(t, 1000, cfg.Limits.MaxCount, "unset keys keep defaults")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TUTTI_CATALOG", "")
	t.Setenv("TUTTI_LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "limits: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TUTTI_CATALOG", "/etc/tutti/catalog.yaml")
	t.Setenv("TUTTI_LOG_LEVEL", "error")

	cfg, err := Load(writeConfig(t, "catalog:\n  path: local.yaml\n"))
	require.NoError(t, err)
	assert.Equal(t, "/etc/tutti/catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero max count", func(c *Config) { c.Limits.MaxCount = 0 }, "max_count"},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }, "invalid logging level"},
		{"watch without path", func(c *Config) { c.Catalog.Watch = true }, "catalog.watch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
