package mcp

import (
	"github.com/dupescope/dupescope/app"
	"github.com/dupescope/dupescope/domain"
	"github.com/dupescope/dupescope/internal/config"
	"github.com/dupescope/dupescope/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	collector  domain.FileCollector
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		collector:  service.NewFileCollector(),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// Collector exposes the file collector.
func (d *Dependencies) Collector() domain.FileCollector {
	return d.collector
}

// BuildGroupUseCase assembles a fresh GroupUseCase with injected dependencies.
// MCP responses are always JSON, so the formatter keeps ungrouped files visible.
func (d *Dependencies) BuildGroupUseCase() (*app.GroupUseCase, error) {
	return app.NewGroupUseCaseBuilder().
		WithService(service.NewGroupService(service.NewNoOpProgressReporter())).
		WithCollector(d.collector).
		WithFormatter(service.NewGroupFormatter(true)).
		WithConfigLoader(service.NewGroupConfigurationLoader()).
		WithProgress(service.NewNoOpProgressReporter()).
		Build()
}
