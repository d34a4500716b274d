package mcp

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dupescope/dupescope/domain"
	"github.com/dupescope/dupescope/service"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleGroupFiles handles the group_files tool
func (h *HandlerSet) HandleGroupFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req, errMsg := h.requestFromArgs(args)
	if errMsg != "" {
		return mcp.NewToolResultError(errMsg), nil
	}
	req.Paths = []string{path}

	return h.runGrouping(ctx, req)
}

// HandleFindDuplicates handles the find_duplicates tool
func (h *HandlerSet) HandleFindDuplicates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req, errMsg := h.requestFromArgs(args)
	if errMsg != "" {
		return mcp.NewToolResultError(errMsg), nil
	}
	req.Paths = []string{path}
	req.Strategy = domain.StrategyTiered

	return h.runGrouping(ctx, req)
}

// HandleComputeSimilarity handles the compute_similarity tool
func (h *HandlerSet) HandleComputeSimilarity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	nameA, ok := args["name_a"].(string)
	if !ok {
		return mcp.NewToolResultError("name_a parameter is required and must be a string"), nil
	}
	nameB, ok := args["name_b"].(string)
	if !ok {
		return mcp.NewToolResultError("name_b parameter is required and must be a string"), nil
	}

	req, errMsg := h.requestFromArgs(args)
	if errMsg != "" {
		return mcp.NewToolResultError(errMsg), nil
	}

	uc, err := h.deps.BuildGroupUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create grouping engine: %v", err)), nil
	}

	score, err := uc.ComputeSimilarity(ctx, nameA, nameB, *req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("similarity computation failed: %v", err)), nil
	}

	jsonData, err := service.EncodeJSON(map[string]interface{}{
		"name_a":     nameA,
		"name_b":     nameB,
		"algorithm":  string(req.Algorithm),
		"similarity": score,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(jsonData), nil
}

// runGrouping executes the grouping use case and returns its JSON rendering
func (h *HandlerSet) runGrouping(ctx context.Context, req *domain.GroupRequest) (*mcp.CallToolResult, error) {
	uc, err := h.deps.BuildGroupUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create grouping engine: %v", err)), nil
	}

	var buf bytes.Buffer
	req.OutputFormat = domain.OutputFormatJSON
	req.OutputWriter = &buf
	req.OutputPath = ""

	if err := uc.Execute(ctx, *req); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("grouping failed: %v", err)), nil
	}

	return mcp.NewToolResultText(buf.String()), nil
}

// requestFromArgs builds a grouping request from the tool arguments, starting
// from the loaded configuration defaults.
func (h *HandlerSet) requestFromArgs(args map[string]interface{}) (*domain.GroupRequest, string) {
	req := domain.DefaultGroupRequest()
	if cfg := h.deps.Config(); cfg != nil {
		req.Threshold = cfg.Grouping.Threshold
		req.Algorithm = domain.Algorithm(cfg.Grouping.Algorithm)
		req.Strategy = domain.Strategy(cfg.Grouping.Strategy)
		req.CaseSensitive = cfg.Grouping.CaseSensitive
		req.MinGroupSize = cfg.Grouping.MinGroupSize
		req.Recursive = cfg.Input.Recursive
		req.IncludePatterns = cfg.Input.IncludePatterns
		req.ExcludePatterns = cfg.Input.ExcludePatterns
	}

	if threshold, ok := args["threshold"].(float64); ok {
		if threshold < 0 || threshold > 100 {
			return nil, "threshold must be between 0 and 100"
		}
		req.Threshold = int(threshold)
	}
	if algorithm, ok := args["algorithm"].(string); ok {
		parsed, err := domain.ParseAlgorithm(algorithm)
		if err != nil {
			return nil, fmt.Sprintf("unknown algorithm: %s", algorithm)
		}
		req.Algorithm = parsed
	}
	if recursive, ok := args["recursive"].(bool); ok {
		req.Recursive = recursive
	}
	if caseSensitive, ok := args["case_sensitive"].(bool); ok {
		req.CaseSensitive = caseSensitive
	}
	if minGroupSize, ok := args["min_group_size"].(float64); ok {
		if minGroupSize < 2 {
			return nil, "min_group_size must be at least 2"
		}
		req.MinGroupSize = int(minGroupSize)
	}

	return req, ""
}
