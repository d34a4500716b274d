package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dupescope/dupescope/app"
	"github.com/dupescope/dupescope/domain"
	"github.com/dupescope/dupescope/internal/config"
	"github.com/dupescope/dupescope/service"
)

// buildGroupUseCase assembles the grouping use case with the standard
// service implementations. Status and warnings go to the command's stderr.
func buildGroupUseCase(cmd *cobra.Command, showUngrouped bool) (*app.GroupUseCase, error) {
	stderr := cmd.ErrOrStderr()

	groupService := service.NewGroupService(service.NewStderrProgressReporter(stderr))
	progressManager := service.NewProgressManager()
	progressManager.SetWriter(stderr)
	groupService.SetProgressManager(progressManager)

	return app.NewGroupUseCaseBuilder().
		WithService(groupService).
		WithCollector(service.NewFileCollector()).
		WithFormatter(service.NewGroupFormatter(showUngrouped)).
		WithConfigLoader(service.NewGroupConfigurationLoader()).
		WithReportWriter(service.NewFileOutputWriter(stderr)).
		WithProgress(service.NewStderrProgressReporter(stderr)).
		Build()
}

// loadConfigForCommand loads the effective configuration for a command.
// An explicit path wins; otherwise a .dupescope.toml discovered walking up
// from the working directory, then a dupescope.yaml in the working
// directory, then defaults.
func loadConfigForCommand(configFile string) (*config.Config, error) {
	switch {
	case strings.HasSuffix(configFile, ".toml"):
		return config.LoadTomlConfig(configFile, config.DefaultConfig())
	case configFile != "":
		return config.LoadConfig(configFile)
	default:
		if tomlPath := config.FindTomlConfig("."); tomlPath != "" {
			return config.LoadTomlConfig(tomlPath, config.DefaultConfig())
		}
		return config.LoadConfig("")
	}
}

// applyConfig overrides request fields from the configuration, keeping any
// value the user passed explicitly on the command line.
func applyConfig(cmd *cobra.Command, req *domain.GroupRequest, configFile string) error {
	cfg, err := loadConfigForCommand(configFile)
	if err != nil {
		return err
	}

	tracker := config.NewFlagTrackerFromFlagSet(cmd.Flags())
	cfg.ApplyToRequest(req, tracker)
	return nil
}
