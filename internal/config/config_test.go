package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dupescope/dupescope/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 70, cfg.Grouping.Threshold)
	assert.Equal(t, "auto", cfg.Grouping.Algorithm)
	assert.Equal(t, "name", cfg.Grouping.Strategy)
	assert.Equal(t, 2, cfg.Grouping.MinGroupSize)
	assert.True(t, cfg.Input.Recursive)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"threshold too high", func(c *Config) { c.Grouping.Threshold = 101 }},
		{"threshold negative", func(c *Config) { c.Grouping.Threshold = -1 }},
		{"min group size too small", func(c *Config) { c.Grouping.MinGroupSize = 1 }},
		{"unknown algorithm", func(c *Config) { c.Grouping.Algorithm = "soundex" }},
		{"unknown strategy", func(c *Config) { c.Grouping.Strategy = "hybrid" }},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dupescope.yaml")
	content := `
grouping:
  threshold: 85
  algorithm: token
  strategy: content
  min_group_size: 3
output:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 85, cfg.Grouping.Threshold)
	assert.Equal(t, "token", cfg.Grouping.Algorithm)
	assert.Equal(t, "content", cfg.Grouping.Strategy)
	assert.Equal(t, 3, cfg.Grouping.MinGroupSize)
	assert.Equal(t, "json", cfg.Output.Format)
	// Untouched sections keep their defaults
	assert.True(t, cfg.Input.Recursive)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dupescope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grouping:\n  threshold: 250\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveAndReloadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")

	original := DefaultConfig()
	original.Grouping.Threshold = 90
	original.Grouping.Algorithm = "substring"
	require.NoError(t, SaveConfig(original, path))

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 90, reloaded.Grouping.Threshold)
	assert.Equal(t, "substring", reloaded.Grouping.Algorithm)
}

func TestApplyToRequestRespectsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grouping.Threshold = 95
	cfg.Grouping.Algorithm = "token"

	req := domain.DefaultGroupRequest()
	req.Threshold = 40 // user passed --threshold 40

	tracker := NewFlagTracker()
	tracker.Set(FlagThreshold)

	cfg.ApplyToRequest(req, tracker)

	assert.Equal(t, 40, req.Threshold, "explicit flag wins over config file")
	assert.Equal(t, domain.AlgorithmToken, req.Algorithm, "unset flag takes config value")
}

func TestApplyToRequestNilTracker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grouping.Strategy = "content"

	req := domain.DefaultGroupRequest()
	cfg.ApplyToRequest(req, nil)

	assert.Equal(t, domain.StrategyTiered, req.Strategy)
}
