package service

import (
	"strings"

	"github.com/dupescope/dupescope/domain"
	"github.com/dupescope/dupescope/internal/config"
)

// GroupConfigurationLoaderImpl implements the GroupConfigurationLoader interface
type GroupConfigurationLoaderImpl struct{}

// NewGroupConfigurationLoader creates a new configuration loader service
func NewGroupConfigurationLoader() *GroupConfigurationLoaderImpl {
	return &GroupConfigurationLoaderImpl{}
}

// LoadGroupConfig loads grouping configuration from the given path. An empty
// path falls back to discovery: a .dupescope.toml found walking upward from
// the working directory, then a dupescope.yaml in the working directory,
// then hardcoded defaults.
func (c *GroupConfigurationLoaderImpl) LoadGroupConfig(configPath string) (*domain.GroupRequest, error) {
	var cfg *config.Config
	var err error

	switch {
	case strings.HasSuffix(configPath, ".toml"):
		cfg, err = config.LoadTomlConfig(configPath, config.DefaultConfig())
	case configPath == "":
		if tomlPath := config.FindTomlConfig("."); tomlPath != "" {
			cfg, err = config.LoadTomlConfig(tomlPath, config.DefaultConfig())
		} else {
			cfg, err = config.LoadConfig("")
		}
	default:
		cfg, err = config.LoadConfig(configPath)
	}
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}

	return c.requestFromConfig(cfg), nil
}

// SaveGroupConfig saves grouping configuration to a YAML file
func (c *GroupConfigurationLoaderImpl) SaveGroupConfig(req *domain.GroupRequest, configPath string) error {
	cfg := c.configFromRequest(req)
	if err := config.SaveConfig(cfg, configPath); err != nil {
		return domain.NewConfigError("failed to save configuration file", err)
	}
	return nil
}

// GetDefaultGroupConfig returns the default grouping configuration
func (c *GroupConfigurationLoaderImpl) GetDefaultGroupConfig() *domain.GroupRequest {
	return domain.DefaultGroupRequest()
}

func (c *GroupConfigurationLoaderImpl) requestFromConfig(cfg *config.Config) *domain.GroupRequest {
	req := domain.DefaultGroupRequest()
	req.Threshold = cfg.Grouping.Threshold
	req.Algorithm = domain.Algorithm(cfg.Grouping.Algorithm)
	req.Strategy = domain.Strategy(cfg.Grouping.Strategy)
	req.CaseSensitive = cfg.Grouping.CaseSensitive
	req.MinGroupSize = cfg.Grouping.MinGroupSize
	req.Recursive = cfg.Input.Recursive
	req.IncludePatterns = cfg.Input.IncludePatterns
	req.ExcludePatterns = cfg.Input.ExcludePatterns
	req.OutputFormat = domain.OutputFormat(cfg.Output.Format)
	req.ShowUngrouped = cfg.Output.ShowUngrouped
	return req
}

func (c *GroupConfigurationLoaderImpl) configFromRequest(req *domain.GroupRequest) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Grouping.Threshold = req.Threshold
	cfg.Grouping.Algorithm = string(req.Algorithm)
	cfg.Grouping.Strategy = string(req.Strategy)
	cfg.Grouping.CaseSensitive = req.CaseSensitive
	cfg.Grouping.MinGroupSize = req.MinGroupSize
	cfg.Input.Recursive = req.Recursive
	cfg.Input.IncludePatterns = req.IncludePatterns
	cfg.Input.ExcludePatterns = req.ExcludePatterns
	cfg.Output.Format = string(req.OutputFormat)
	cfg.Output.ShowUngrouped = req.ShowUngrouped
	return cfg
}
