package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTomlConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, TomlConfigFileName)
	content := `
[grouping]
threshold = 80
algorithm = "levenshtein"

[output]
format = "csv"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadTomlConfig(path, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.Grouping.Threshold)
	assert.Equal(t, "levenshtein", cfg.Grouping.Algorithm)
	assert.Equal(t, "csv", cfg.Output.Format)

	// Unset keys keep base values
	assert.Equal(t, "name", cfg.Grouping.Strategy)
	assert.Equal(t, 2, cfg.Grouping.MinGroupSize)
	assert.True(t, cfg.Output.ShowUngrouped)
}

func TestLoadTomlConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, TomlConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[grouping]\nmin_group_size = 1\n"), 0o644))

	_, err := LoadTomlConfig(path, DefaultConfig())
	assert.Error(t, err)
}

func TestFindTomlConfigWalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path := filepath.Join(root, TomlConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	assert.Equal(t, path, FindTomlConfig(nested))
}

func TestFindTomlConfigMissing(t *testing.T) {
	assert.Equal(t, "", FindTomlConfig(t.TempDir()))
}
