package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// TomlConfigFileName is the project-local TOML configuration file
const TomlConfigFileName = ".dupescope.toml"

// tomlConfig mirrors Config for the .dupescope.toml layout. Pointer fields
// distinguish "absent" from zero values so the file only overrides what it
// actually sets.
type tomlConfig struct {
	Grouping tomlGroupingConfig `toml:"grouping"`
	Input    tomlInputConfig    `toml:"input"`
	Output   tomlOutputConfig   `toml:"output"`
}

type tomlGroupingConfig struct {
	Threshold     *int    `toml:"threshold"`
	Algorithm     *string `toml:"algorithm"`
	Strategy      *string `toml:"strategy"`
	CaseSensitive *bool   `toml:"case_sensitive"`
	MinGroupSize  *int    `toml:"min_group_size"`
}

type tomlInputConfig struct {
	Recursive       *bool    `toml:"recursive"`
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
}

type tomlOutputConfig struct {
	Format        *string `toml:"format"`
	ShowUngrouped *bool   `toml:"show_ungrouped"`
}

// FindTomlConfig walks from startDir toward the filesystem root looking for
// a .dupescope.toml file. Returns "" when none exists.
func FindTomlConfig(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, TomlConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadTomlConfig reads a .dupescope.toml file and applies its values on top
// of the given base configuration.
func LoadTomlConfig(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed tomlConfig
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	merged := *base
	parsed.applyTo(&merged)

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (t *tomlConfig) applyTo(c *Config) {
	if t.Grouping.Threshold != nil {
		c.Grouping.Threshold = *t.Grouping.Threshold
	}
	if t.Grouping.Algorithm != nil {
		c.Grouping.Algorithm = *t.Grouping.Algorithm
	}
	if t.Grouping.Strategy != nil {
		c.Grouping.Strategy = *t.Grouping.Strategy
	}
	if t.Grouping.CaseSensitive != nil {
		c.Grouping.CaseSensitive = *t.Grouping.CaseSensitive
	}
	if t.Grouping.MinGroupSize != nil {
		c.Grouping.MinGroupSize = *t.Grouping.MinGroupSize
	}

	if t.Input.Recursive != nil {
		c.Input.Recursive = *t.Input.Recursive
	}
	if t.Input.IncludePatterns != nil {
		c.Input.IncludePatterns = t.Input.IncludePatterns
	}
	if t.Input.ExcludePatterns != nil {
		c.Input.ExcludePatterns = t.Input.ExcludePatterns
	}

	if t.Output.Format != nil {
		c.Output.Format = *t.Output.Format
	}
	if t.Output.ShowUngrouped != nil {
		c.Output.ShowUngrouped = *t.Output.ShowUngrouped
	}
}
