package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dupescope/dupescope/domain"
	"github.com/dupescope/dupescope/internal/config"
	"github.com/dupescope/dupescope/service"
)

// DupesCommand handles the content-aware duplicate detection CLI command
type DupesCommand struct {
	caseSensitive bool
	recursive     bool
	include       []string
	exclude       []string

	// Output format flags (only one should be true)
	json bool
	csv  bool
	yaml bool

	output        string
	showUngrouped bool
	configFile    string
}

// NewDupesCommand creates a new dupes command
func NewDupesCommand() *DupesCommand {
	return &DupesCommand{
		recursive:     true,
		showUngrouped: true,
	}
}

// CreateCobraCommand creates the Cobra command for duplicate detection
func (c *DupesCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dupes [paths...]",
		Short: "Find duplicate files by content",
		Long: `Find duplicate and near-duplicate files using content signatures.

Files are compared in three tiers, in order:

  identical - byte-identical content (matching SHA-256 digests)
  content   - equal sizes with very similar names
  name      - nearly identical names

Each group is tagged with the tier that matched first. Files whose content
cannot be read are reported as skipped and excluded from the result.

Examples:
  # Find duplicates under the current directory
  dupescope dupes .

  # Scan several folders, emit JSON
  dupescope dupes --json ~/Downloads ~/Documents

  # Ignore partial downloads
  dupescope dupes --exclude '*.part' ~/Downloads`,
		RunE: c.runDupes,
	}

	cmd.Flags().BoolVar(&c.caseSensitive, config.FlagCaseSensitive, c.caseSensitive,
		"Enable case-sensitive matching")
	cmd.Flags().BoolVarP(&c.recursive, config.FlagRecursive, "r", c.recursive,
		"Recurse into subdirectories")
	cmd.Flags().StringSliceVar(&c.include, config.FlagInclude, nil,
		"Glob patterns to include")
	cmd.Flags().StringSliceVar(&c.exclude, config.FlagExclude, nil,
		"Glob patterns to exclude")

	cmd.Flags().BoolVar(&c.json, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Output CSV")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Output YAML")

	cmd.Flags().StringVarP(&c.output, "output", "o", c.output,
		"Output file (default: stdout)")
	cmd.Flags().BoolVar(&c.showUngrouped, config.FlagShowUngrouped, c.showUngrouped,
		"List files that ended up in no group")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", c.configFile,
		"Path to configuration file")

	return cmd
}

// runDupes executes the dupes command
func (c *DupesCommand) runDupes(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	format, _, err := service.NewOutputFormatResolver().Determine(c.json, c.csv, c.yaml)
	if err != nil {
		return err
	}

	req := domain.DefaultGroupRequest()
	req.Strategy = domain.StrategyTiered
	req.CaseSensitive = c.caseSensitive
	req.Recursive = c.recursive
	req.IncludePatterns = c.include
	req.ExcludePatterns = c.exclude
	req.OutputFormat = format
	req.ShowUngrouped = c.showUngrouped

	if err := applyConfig(cmd, req, c.configFile); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Content-aware mode always works on discovered paths, regardless of
	// the strategy configured for plain grouping
	req.Strategy = domain.StrategyTiered
	if c.json || c.csv || c.yaml {
		req.OutputFormat = format
	}
	req.Paths = args
	req.OutputWriter = cmd.OutOrStdout()
	req.OutputPath = c.output

	useCase, err := buildGroupUseCase(cmd, req.ShowUngrouped)
	if err != nil {
		return fmt.Errorf("failed to create grouping engine: %w", err)
	}

	if err := useCase.Execute(context.Background(), *req); err != nil {
		return fmt.Errorf("duplicate detection failed: %w", err)
	}
	return nil
}

// NewDupesCmd creates and returns the dupes cobra command
func NewDupesCmd() *cobra.Command {
	return NewDupesCommand().CreateCobraCommand()
}
