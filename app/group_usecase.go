package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dupescope/dupescope/domain"
)

// GroupUseCase orchestrates file similarity grouping operations
type GroupUseCase struct {
	service      domain.GroupService
	collector    domain.FileCollector
	formatter    domain.GroupOutputFormatter
	configLoader domain.GroupConfigurationLoader
	reportWriter domain.ReportWriter
	progress     domain.ProgressReporter
}

// NewGroupUseCase creates a new group use case with the given dependencies
func NewGroupUseCase(
	service domain.GroupService,
	collector domain.FileCollector,
	formatter domain.GroupOutputFormatter,
	configLoader domain.GroupConfigurationLoader,
	reportWriter domain.ReportWriter,
	progress domain.ProgressReporter,
) *GroupUseCase {
	return &GroupUseCase{
		service:      service,
		collector:    collector,
		formatter:    formatter,
		configLoader: configLoader,
		reportWriter: reportWriter,
		progress:     progress,
	}
}

// Execute runs the grouping use case: resolve inputs, group, format, write
func (uc *GroupUseCase) Execute(ctx context.Context, req domain.GroupRequest) error {
	startTime := time.Now()

	// Load configuration if specified; request values take precedence
	if req.ConfigPath != "" {
		configReq, err := uc.configLoader.LoadGroupConfig(req.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		req = uc.mergeConfiguration(*configReq, req)
	}

	names, err := uc.resolveInputNames(&req)
	if err != nil {
		return fmt.Errorf("failed to collect files: %w", err)
	}

	if len(names) == 0 {
		if uc.progress != nil {
			uc.progress.Warning("no files found matching the criteria")
		}
		return uc.outputEmptyResults(req)
	}

	req.Files = names
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	response, err := uc.service.GroupNames(ctx, names, &req)
	if err != nil {
		return fmt.Errorf("grouping failed: %w", err)
	}

	response.Duration = time.Since(startTime).Milliseconds()

	return uc.writeResponse(response, &req)
}

// ExecuteWithNames runs grouping on an explicit name list, bypassing collection
func (uc *GroupUseCase) ExecuteWithNames(ctx context.Context, names []string, req domain.GroupRequest) error {
	startTime := time.Now()

	if len(names) == 0 {
		return uc.outputEmptyResults(req)
	}

	req.Files = names
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	response, err := uc.service.GroupNames(ctx, names, &req)
	if err != nil {
		return fmt.Errorf("grouping failed: %w", err)
	}

	response.Duration = time.Since(startTime).Milliseconds()

	return uc.writeResponse(response, &req)
}

// ComputeSimilarity computes the similarity of two names under the request
func (uc *GroupUseCase) ComputeSimilarity(ctx context.Context, a, b string, req domain.GroupRequest) (float64, error) {
	score, err := uc.service.ComputeSimilarity(ctx, a, b, &req)
	if err != nil {
		return 0.0, fmt.Errorf("failed to compute similarity: %w", err)
	}
	return score, nil
}

// SaveConfiguration saves the current grouping configuration
func (uc *GroupUseCase) SaveConfiguration(req domain.GroupRequest, configPath string) error {
	if err := uc.configLoader.SaveGroupConfig(&req, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// resolveInputNames gathers the names to compare from the three input
// sources: explicit names, a list file, and filesystem discovery paths.
func (uc *GroupUseCase) resolveInputNames(req *domain.GroupRequest) ([]string, error) {
	names := append([]string{}, req.Files...)

	if req.InputFile != "" {
		listed, err := uc.collector.ReadNameList(req.InputFile)
		if err != nil {
			return nil, err
		}
		names = append(names, listed...)
	}

	if len(req.Paths) > 0 {
		discovered, err := uc.collector.CollectFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
		if err != nil {
			return nil, err
		}
		names = append(names, discovered...)
	}

	return names, nil
}

// writeResponse formats the response and writes it to the request's
// destination, either the output writer or a report file.
func (uc *GroupUseCase) writeResponse(response *domain.GroupResponse, req *domain.GroupRequest) error {
	if !req.HasValidOutputWriter() && req.OutputPath == "" {
		return fmt.Errorf("no valid output writer specified")
	}

	writeFunc := func(w io.Writer) error {
		return uc.formatter.FormatGroupResponse(response, req.OutputFormat, w)
	}

	if uc.reportWriter != nil {
		return uc.reportWriter.Write(req.OutputWriter, req.OutputPath, req.OutputFormat, writeFunc)
	}
	return writeFunc(req.OutputWriter)
}

// mergeConfiguration merges configuration from file with request parameters.
// Request parameters take precedence over configuration file values.
func (uc *GroupUseCase) mergeConfiguration(configReq, requestReq domain.GroupRequest) domain.GroupRequest {
	merged := configReq
	defaultReq := domain.DefaultGroupRequest()

	// Inputs always come from the request
	merged.Files = requestReq.Files
	merged.Paths = requestReq.Paths
	merged.InputFile = requestReq.InputFile

	if requestReq.Threshold != defaultReq.Threshold {
		merged.Threshold = requestReq.Threshold
	}
	if requestReq.Algorithm != defaultReq.Algorithm {
		merged.Algorithm = requestReq.Algorithm
	}
	if requestReq.Strategy != defaultReq.Strategy {
		merged.Strategy = requestReq.Strategy
	}
	if requestReq.CaseSensitive != defaultReq.CaseSensitive {
		merged.CaseSensitive = requestReq.CaseSensitive
	}
	if requestReq.MinGroupSize != defaultReq.MinGroupSize {
		merged.MinGroupSize = requestReq.MinGroupSize
	}
	if requestReq.Recursive != defaultReq.Recursive {
		merged.Recursive = requestReq.Recursive
	}
	if len(requestReq.IncludePatterns) > 0 {
		merged.IncludePatterns = requestReq.IncludePatterns
	}
	if len(requestReq.ExcludePatterns) > 0 {
		merged.ExcludePatterns = requestReq.ExcludePatterns
	}

	// Output settings always come from the request
	merged.OutputFormat = requestReq.OutputFormat
	merged.OutputWriter = requestReq.OutputWriter
	merged.OutputPath = requestReq.OutputPath
	merged.ShowUngrouped = requestReq.ShowUngrouped

	return merged
}

// outputEmptyResults outputs an empty result when no files are found
func (uc *GroupUseCase) outputEmptyResults(req domain.GroupRequest) error {
	emptyResponse := &domain.GroupResponse{
		Result: &domain.GroupingResult{
			Groups:    []domain.Group{},
			Ungrouped: []string{},
			Summary: domain.Summary{
				ThresholdUsed: req.ThresholdFraction(),
			},
		},
		Duration: 0,
		Success:  true,
	}

	return uc.writeResponse(emptyResponse, &req)
}

// GroupUseCaseBuilder helps build GroupUseCase with dependencies
type GroupUseCaseBuilder struct {
	service      domain.GroupService
	collector    domain.FileCollector
	formatter    domain.GroupOutputFormatter
	configLoader domain.GroupConfigurationLoader
	reportWriter domain.ReportWriter
	progress     domain.ProgressReporter
}

// NewGroupUseCaseBuilder creates a new builder for GroupUseCase
func NewGroupUseCaseBuilder() *GroupUseCaseBuilder {
	return &GroupUseCaseBuilder{}
}

// WithService sets the group service
func (b *GroupUseCaseBuilder) WithService(service domain.GroupService) *GroupUseCaseBuilder {
	b.service = service
	return b
}

// WithCollector sets the file collector
func (b *GroupUseCaseBuilder) WithCollector(collector domain.FileCollector) *GroupUseCaseBuilder {
	b.collector = collector
	return b
}

// WithFormatter sets the output formatter
func (b *GroupUseCaseBuilder) WithFormatter(formatter domain.GroupOutputFormatter) *GroupUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *GroupUseCaseBuilder) WithConfigLoader(configLoader domain.GroupConfigurationLoader) *GroupUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithReportWriter sets the report writer
func (b *GroupUseCaseBuilder) WithReportWriter(reportWriter domain.ReportWriter) *GroupUseCaseBuilder {
	b.reportWriter = reportWriter
	return b
}

// WithProgress sets the progress reporter
func (b *GroupUseCaseBuilder) WithProgress(progress domain.ProgressReporter) *GroupUseCaseBuilder {
	b.progress = progress
	return b
}

// Build creates the GroupUseCase, failing when required dependencies are missing
func (b *GroupUseCaseBuilder) Build() (*GroupUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("group service is required")
	}
	if b.collector == nil {
		return nil, fmt.Errorf("file collector is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	if b.configLoader == nil {
		return nil, fmt.Errorf("configuration loader is required")
	}

	return NewGroupUseCase(b.service, b.collector, b.formatter, b.configLoader, b.reportWriter, b.progress), nil
}
