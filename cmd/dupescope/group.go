package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dupescope/dupescope/domain"
	"github.com/dupescope/dupescope/internal/config"
)

// GroupCommand handles the filename similarity grouping CLI command
type GroupCommand struct {
	threshold     int
	algorithm     string
	caseSensitive bool
	minGroupSize  int

	inputFile string
	discover  []string
	recursive bool
	include   []string
	exclude   []string

	format        string
	output        string
	showUngrouped bool
	configFile    string
}

// NewGroupCommand creates a new group command
func NewGroupCommand() *GroupCommand {
	return &GroupCommand{
		threshold:     70,
		algorithm:     "auto",
		caseSensitive: false,
		minGroupSize:  2,
		recursive:     true,
		format:        "text",
		showUngrouped: true,
	}
}

// CreateCobraCommand creates the Cobra command for filename grouping
func (c *GroupCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group [names...]",
		Short: "Group file names by similarity",
		Long: `Group file names by string similarity.

Names are compared pairwise with the selected algorithm; names whose score
reaches the threshold end up in the same group, transitively. Every input
name appears in exactly one group or in the ungrouped list.

Input can come from positional arguments, a list file (--input-file, one
name per line, # starts a comment), directory discovery (--discover), or
stdin when nothing else is given.

Examples:
  # Group names given on the command line
  dupescope group report_v1.txt report_v2.txt summary.doc

  # Lower the threshold and pick a specific algorithm
  dupescope group -t 50 -a token *.txt

  # Read names from a file, write JSON
  dupescope group --input-file names.txt --format json

  # Discover files in a directory tree
  dupescope group --discover ~/Downloads --exclude '*.part'`,
		RunE: c.runGroup,
	}

	cmd.Flags().IntVarP(&c.threshold, config.FlagThreshold, "t", c.threshold,
		"Similarity threshold percentage (0-100)")
	cmd.Flags().StringVarP(&c.algorithm, config.FlagAlgorithm, "a", c.algorithm,
		"Similarity algorithm: levenshtein, jaro, token, substring, auto")
	cmd.Flags().BoolVar(&c.caseSensitive, config.FlagCaseSensitive, c.caseSensitive,
		"Enable case-sensitive matching")
	cmd.Flags().IntVar(&c.minGroupSize, config.FlagMinGroupSize, c.minGroupSize,
		"Minimum files per group")

	cmd.Flags().StringVarP(&c.inputFile, "input-file", "i", c.inputFile,
		"Read file names from file (- for stdin)")
	cmd.Flags().StringSliceVarP(&c.discover, "discover", "d", nil,
		"Discover files in directory (repeatable)")
	cmd.Flags().BoolVarP(&c.recursive, config.FlagRecursive, "r", c.recursive,
		"Recurse into subdirectories during discovery")
	cmd.Flags().StringSliceVar(&c.include, config.FlagInclude, nil,
		"Glob patterns to include during discovery")
	cmd.Flags().StringSliceVar(&c.exclude, config.FlagExclude, nil,
		"Glob patterns to exclude during discovery")

	cmd.Flags().StringVarP(&c.format, config.FlagFormat, "f", c.format,
		"Output format: text, json, yaml, csv")
	cmd.Flags().StringVarP(&c.output, "output", "o", c.output,
		"Output file (default: stdout)")
	cmd.Flags().BoolVar(&c.showUngrouped, config.FlagShowUngrouped, c.showUngrouped,
		"List files that ended up in no group")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", c.configFile,
		"Path to configuration file")

	return cmd
}

// runGroup executes the group command
func (c *GroupCommand) runGroup(cmd *cobra.Command, args []string) error {
	req, err := c.createRequest(cmd, args)
	if err != nil {
		return err
	}

	useCase, err := buildGroupUseCase(cmd, req.ShowUngrouped)
	if err != nil {
		return fmt.Errorf("failed to create grouping engine: %w", err)
	}

	if err := useCase.Execute(context.Background(), *req); err != nil {
		return fmt.Errorf("grouping failed: %w", err)
	}
	return nil
}

// createRequest builds the grouping request from flags, config, and args
func (c *GroupCommand) createRequest(cmd *cobra.Command, args []string) (*domain.GroupRequest, error) {
	algorithm, err := domain.ParseAlgorithm(c.algorithm)
	if err != nil {
		return nil, err
	}
	format, err := domain.ParseOutputFormat(c.format)
	if err != nil {
		return nil, err
	}

	req := domain.DefaultGroupRequest()
	req.Threshold = c.threshold
	req.Algorithm = algorithm
	req.Strategy = domain.StrategyTransitive
	req.CaseSensitive = c.caseSensitive
	req.MinGroupSize = c.minGroupSize
	req.Recursive = c.recursive
	req.IncludePatterns = c.include
	req.ExcludePatterns = c.exclude
	req.OutputFormat = format
	req.ShowUngrouped = c.showUngrouped

	if err := applyConfig(cmd, req, c.configFile); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// This command is filename-only; a strategy set in the config file
	// must not switch it into content-aware mode.
	req.Strategy = domain.StrategyTransitive

	req.Files = args
	req.InputFile = c.inputFile
	req.Paths = c.discover

	// With no other input, names come from stdin
	if len(req.Files) == 0 && req.InputFile == "" && len(req.Paths) == 0 {
		req.InputFile = "-"
	}

	req.OutputWriter = cmd.OutOrStdout()
	req.OutputPath = c.output

	return req, nil
}

// NewGroupCmd creates and returns the group cobra command
func NewGroupCmd() *cobra.Command {
	return NewGroupCommand().CreateCobraCommand()
}
