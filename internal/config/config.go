package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete dupescope configuration
type Config struct {
	Grouping GroupingConfig `mapstructure:"grouping" yaml:"grouping" toml:"grouping"`
	Input    InputConfig    `mapstructure:"input" yaml:"input" toml:"input"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output" toml:"output"`
}

// GroupingConfig holds the similarity and clustering settings
type GroupingConfig struct {
	// Similarity threshold as a percentage (0-100)
	Threshold int `mapstructure:"threshold" yaml:"threshold" toml:"threshold"`

	// Similarity algorithm: levenshtein, jaro, token, substring, auto
	Algorithm string `mapstructure:"algorithm" yaml:"algorithm" toml:"algorithm"`

	// Clustering strategy: name (transitive) or content (tiered)
	Strategy string `mapstructure:"strategy" yaml:"strategy" toml:"strategy"`

	// Case-sensitive name comparison
	CaseSensitive bool `mapstructure:"case_sensitive" yaml:"case_sensitive" toml:"case_sensitive"`

	// Minimum number of files per group
	MinGroupSize int `mapstructure:"min_group_size" yaml:"min_group_size" toml:"min_group_size"`
}

// InputConfig holds file collection settings
type InputConfig struct {
	Recursive       bool     `mapstructure:"recursive" yaml:"recursive" toml:"recursive"`
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns" toml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" toml:"exclude_patterns"`
}

// OutputConfig holds output settings
type OutputConfig struct {
	Format        string `mapstructure:"format" yaml:"format" toml:"format"`
	ShowUngrouped bool   `mapstructure:"show_ungrouped" yaml:"show_ungrouped" toml:"show_ungrouped"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Grouping: GroupingConfig{
			Threshold:     70,
			Algorithm:     "auto",
			Strategy:      "name",
			CaseSensitive: false,
			MinGroupSize:  2,
		},
		Input: InputConfig{
			Recursive:       true,
			IncludePatterns: []string{},
			ExcludePatterns: []string{},
		},
		Output: OutputConfig{
			Format:        "text",
			ShowUngrouped: true,
		},
	}
}

// LoadConfig loads configuration from a file, falling back to a discovered
// default config file, falling back to defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = findDefaultConfig()
		if configPath == "" {
			return config, nil
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return config, nil
}

// findDefaultConfig looks for a config file in the working directory
func findDefaultConfig() string {
	candidates := []string{
		"dupescope.yaml",
		"dupescope.yml",
		".dupescope.yaml",
		".dupescope.yml",
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for _, name := range candidates {
		path := filepath.Join(cwd, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// SaveConfig writes the configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("grouping", config.Grouping)
	v.Set("input", config.Input)
	v.Set("output", config.Output)

	return v.WriteConfigAs(path)
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Grouping.Threshold < 0 || c.Grouping.Threshold > 100 {
		return fmt.Errorf("grouping.threshold must be between 0 and 100, got %d", c.Grouping.Threshold)
	}

	if c.Grouping.MinGroupSize < 2 {
		return fmt.Errorf("grouping.min_group_size must be at least 2, got %d", c.Grouping.MinGroupSize)
	}

	switch c.Grouping.Algorithm {
	case "levenshtein", "jaro", "token", "substring", "auto":
	default:
		return fmt.Errorf("grouping.algorithm must be one of levenshtein, jaro, token, substring, auto; got %q", c.Grouping.Algorithm)
	}

	switch c.Grouping.Strategy {
	case "name", "content":
	default:
		return fmt.Errorf("grouping.strategy must be name or content, got %q", c.Grouping.Strategy)
	}

	switch c.Output.Format {
	case "text", "json", "yaml", "csv":
	default:
		return fmt.Errorf("output.format must be one of text, json, yaml, csv; got %q", c.Output.Format)
	}

	return nil
}
