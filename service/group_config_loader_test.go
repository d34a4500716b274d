package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dupescope/dupescope/domain"
)

func TestGetDefaultGroupConfig(t *testing.T) {
	loader := NewGroupConfigurationLoader()
	req := loader.GetDefaultGroupConfig()

	assert.Equal(t, 70, req.Threshold)
	assert.Equal(t, domain.AlgorithmAuto, req.Algorithm)
	assert.Equal(t, domain.StrategyTransitive, req.Strategy)
	assert.Equal(t, 2, req.MinGroupSize)
	assert.Equal(t, domain.OutputFormatText, req.OutputFormat)
}

func TestSaveAndLoadGroupConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dupescope.yaml")

	loader := NewGroupConfigurationLoader()

	req := loader.GetDefaultGroupConfig()
	req.Threshold = 85
	req.Algorithm = domain.AlgorithmToken
	req.Strategy = domain.StrategyTiered
	req.MinGroupSize = 3
	req.OutputFormat = domain.OutputFormatJSON

	require.NoError(t, loader.SaveGroupConfig(req, path))

	loaded, err := loader.LoadGroupConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 85, loaded.Threshold)
	assert.Equal(t, domain.AlgorithmToken, loaded.Algorithm)
	assert.Equal(t, domain.StrategyTiered, loaded.Strategy)
	assert.Equal(t, 3, loaded.MinGroupSize)
	assert.Equal(t, domain.OutputFormatJSON, loaded.OutputFormat)
}

func TestLoadGroupConfigToml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".dupescope.toml")
	content := `
[grouping]
threshold = 90
algorithm = "jaro"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loader := NewGroupConfigurationLoader()
	loaded, err := loader.LoadGroupConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 90, loaded.Threshold)
	assert.Equal(t, domain.AlgorithmJaro, loaded.Algorithm)
	// Untouched settings keep their defaults
	assert.Equal(t, domain.StrategyTransitive, loaded.Strategy)
}

func TestLoadGroupConfigMissingFile(t *testing.T) {
	loader := NewGroupConfigurationLoader()
	_, err := loader.LoadGroupConfig("/nonexistent/dupescope.yaml")
	assert.Error(t, err)
}
