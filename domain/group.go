package domain

import (
	"context"
	"io"
)

// Group is a non-empty set of similar files discovered in a single grouping
// pass. Groups are immutable once emitted and never merged with each other.
type Group struct {
	ID         int      `json:"id" yaml:"id"`
	Files      []string `json:"files" yaml:"files"`
	Similarity float64  `json:"similarity" yaml:"similarity"`
	Tier       Tier     `json:"tier,omitempty" yaml:"tier,omitempty"`
}

// Size returns the number of files in the group
func (g *Group) Size() int {
	return len(g.Files)
}

// Summary holds aggregate counts for one grouping run
type Summary struct {
	TotalFiles     int     `json:"total_files" yaml:"total_files"`
	GroupsFound    int     `json:"groups_found" yaml:"groups_found"`
	UngroupedFiles int     `json:"ungrouped_files" yaml:"ungrouped_files"`
	ThresholdUsed  float64 `json:"threshold_used" yaml:"threshold_used"`
}

// GroupingResult is the complete outcome of one grouping pass. Every input
// file appears in exactly one group or in Ungrouped, never both.
type GroupingResult struct {
	Groups    []Group  `json:"groups" yaml:"groups"`
	Ungrouped []string `json:"ungrouped" yaml:"ungrouped"`
	Summary   Summary  `json:"summary" yaml:"summary"`
}

// GroupRequest represents a request for file similarity grouping
type GroupRequest struct {
	// Input parameters
	Files           []string `json:"files"`
	Paths           []string `json:"paths"`
	InputFile       string   `json:"input_file"`
	Recursive       bool     `json:"recursive"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`

	// Grouping configuration
	Threshold     int       `json:"threshold"` // percentage, 0-100
	Algorithm     Algorithm `json:"algorithm"`
	Strategy      Strategy  `json:"strategy"`
	CaseSensitive bool      `json:"case_sensitive"`
	MinGroupSize  int       `json:"min_group_size"`

	// Output configuration
	OutputFormat  OutputFormat `json:"output_format"`
	OutputWriter  io.Writer    `json:"-"`
	OutputPath    string       `json:"output_path"`
	ShowUngrouped bool         `json:"show_ungrouped"`

	// Configuration file
	ConfigPath string `json:"config_path"`
}

// GroupResponse represents the response from file similarity grouping
type GroupResponse struct {
	Result *GroupingResult `json:"result" yaml:"result"`

	// Files excluded because their content signature could not be read.
	// They appear in neither groups nor ungrouped.
	SkippedFiles []string `json:"skipped_files,omitempty" yaml:"skipped_files,omitempty"`

	// Metadata
	Duration int64  `json:"duration_ms" yaml:"duration_ms"`
	Success  bool   `json:"success" yaml:"success"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// GroupService defines the interface for file similarity grouping
type GroupService interface {
	// GroupFiles groups the files named by the request
	GroupFiles(ctx context.Context, req *GroupRequest) (*GroupResponse, error)

	// GroupNames groups an already-collected list of file names
	GroupNames(ctx context.Context, names []string, req *GroupRequest) (*GroupResponse, error)

	// ComputeSimilarity computes the similarity of two names under the
	// request's algorithm and case sensitivity
	ComputeSimilarity(ctx context.Context, a, b string, req *GroupRequest) (float64, error)
}

// FileCollector gathers the file names the grouping engine works on
type FileCollector interface {
	// CollectFiles resolves paths (files or directories) into a list of
	// file paths honoring the include/exclude patterns
	CollectFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadNameList reads newline-separated file names from a list file,
	// skipping blank lines and '#' comments
	ReadNameList(path string) ([]string, error)

	// FileExists checks whether path names an existing regular file
	FileExists(path string) (bool, error)
}

// GroupOutputFormatter renders a grouping response for external consumption
type GroupOutputFormatter interface {
	// FormatGroupResponse formats a response according to the given format
	FormatGroupResponse(response *GroupResponse, format OutputFormat, writer io.Writer) error
}

// GroupConfigurationLoader loads and saves grouping configuration
type GroupConfigurationLoader interface {
	// LoadGroupConfig loads grouping configuration from file
	LoadGroupConfig(configPath string) (*GroupRequest, error)

	// SaveGroupConfig saves grouping configuration to file
	SaveGroupConfig(config *GroupRequest, configPath string) error

	// GetDefaultGroupConfig returns the default grouping configuration
	GetDefaultGroupConfig() *GroupRequest
}

// Validate validates a group request
func (req *GroupRequest) Validate() error {
	if len(req.Files) == 0 && len(req.Paths) == 0 && req.InputFile == "" {
		return NewValidationError("no input files or paths provided")
	}

	if req.Threshold < 0 || req.Threshold > 100 {
		return NewValidationError("threshold must be between 0 and 100")
	}

	if req.MinGroupSize < 2 {
		return NewValidationError("min_group_size must be >= 2")
	}

	if !req.Algorithm.IsValid() {
		return NewValidationError("algorithm must be one of: levenshtein, jaro, token, substring, auto")
	}

	if req.Strategy != StrategyTransitive && req.Strategy != StrategyTiered {
		return NewValidationError("strategy must be one of: name, content")
	}

	return nil
}

// ThresholdFraction returns the threshold as a fraction in [0,1]
func (req *GroupRequest) ThresholdFraction() float64 {
	return float64(req.Threshold) / 100.0
}

// HasValidOutputWriter checks if the request has a valid output writer
func (req *GroupRequest) HasValidOutputWriter() bool {
	return req.OutputWriter != nil
}

// DefaultGroupRequest returns a default group request
func DefaultGroupRequest() *GroupRequest {
	return &GroupRequest{
		Recursive:       true,
		IncludePatterns: []string{},
		ExcludePatterns: []string{},
		Threshold:       70,
		Algorithm:       AlgorithmAuto,
		Strategy:        StrategyTransitive,
		CaseSensitive:   false,
		MinGroupSize:    2,
		OutputFormat:    OutputFormatText,
		ShowUngrouped:   true,
	}
}
