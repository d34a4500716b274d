package config

import (
	"github.com/dupescope/dupescope/domain"
)

// Flag names shared between the CLI and the merge logic
const (
	FlagThreshold     = "threshold"
	FlagAlgorithm     = "algorithm"
	FlagStrategy      = "strategy"
	FlagCaseSensitive = "case-sensitive"
	FlagMinGroupSize  = "min-group-size"
	FlagRecursive     = "recursive"
	FlagInclude       = "include"
	FlagExclude       = "exclude"
	FlagFormat        = "format"
	FlagShowUngrouped = "show-ungrouped"
)

// ApplyToRequest overrides request fields from the configuration, except for
// fields whose flags were explicitly set on the command line. Precedence:
// explicit flags > config file > defaults already present in the request.
func (c *Config) ApplyToRequest(req *domain.GroupRequest, tracker *FlagTracker) {
	if tracker == nil {
		tracker = NewFlagTracker()
	}

	if !tracker.WasSet(FlagThreshold) {
		req.Threshold = c.Grouping.Threshold
	}
	if !tracker.WasSet(FlagAlgorithm) {
		if algo, err := domain.ParseAlgorithm(c.Grouping.Algorithm); err == nil {
			req.Algorithm = algo
		}
	}
	if !tracker.WasSet(FlagStrategy) {
		if strategy, err := domain.ParseStrategy(c.Grouping.Strategy); err == nil {
			req.Strategy = strategy
		}
	}
	if !tracker.WasSet(FlagCaseSensitive) {
		req.CaseSensitive = c.Grouping.CaseSensitive
	}
	if !tracker.WasSet(FlagMinGroupSize) {
		req.MinGroupSize = c.Grouping.MinGroupSize
	}

	if !tracker.WasSet(FlagRecursive) {
		req.Recursive = c.Input.Recursive
	}
	if !tracker.WasSet(FlagInclude) && len(c.Input.IncludePatterns) > 0 {
		req.IncludePatterns = c.Input.IncludePatterns
	}
	if !tracker.WasSet(FlagExclude) && len(c.Input.ExcludePatterns) > 0 {
		req.ExcludePatterns = c.Input.ExcludePatterns
	}

	if !tracker.WasSet(FlagFormat) {
		if format, err := domain.ParseOutputFormat(c.Output.Format); err == nil {
			req.OutputFormat = format
		}
	}
	if !tracker.WasSet(FlagShowUngrouped) {
		req.ShowUngrouped = c.Output.ShowUngrouped
	}
}
