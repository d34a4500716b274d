package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all dupescope MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	// Tool 1: group_files - Filename similarity grouping
	s.AddTool(mcp.NewTool("group_files",
		mcp.WithDescription("Group files in a folder by filename similarity and return the groups as JSON"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the folder (or file) to scan")),
		mcp.WithNumber("threshold",
			mcp.Description("Similarity threshold as a percentage 0-100 (default: 70)")),
		mcp.WithString("algorithm",
			mcp.Enum("levenshtein", "jaro", "token", "substring", "auto"),
			mcp.Description("Similarity algorithm (default: auto)")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively scan directories (default: true)")),
		mcp.WithBoolean("case_sensitive",
			mcp.Description("Compare names case-sensitively (default: false)")),
		mcp.WithNumber("min_group_size",
			mcp.Description("Minimum number of files per group (default: 2)")),
	), h.HandleGroupFiles)

	// Tool 2: find_duplicates - Content-aware duplicate detection
	s.AddTool(mcp.NewTool("find_duplicates",
		mcp.WithDescription("Find duplicate and near-duplicate files using content signatures with identical/content/name tiers"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the folder to scan")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively scan directories (default: true)")),
		mcp.WithBoolean("case_sensitive",
			mcp.Description("Compare names case-sensitively (default: false)")),
	), h.HandleFindDuplicates)

	// Tool 3: compute_similarity - Pairwise name similarity
	s.AddTool(mcp.NewTool("compute_similarity",
		mcp.WithDescription("Compute the similarity score of two file names under a chosen algorithm"),
		mcp.WithString("name_a",
			mcp.Required(),
			mcp.Description("First file name")),
		mcp.WithString("name_b",
			mcp.Required(),
			mcp.Description("Second file name")),
		mcp.WithString("algorithm",
			mcp.Enum("levenshtein", "jaro", "token", "substring", "auto"),
			mcp.Description("Similarity algorithm (default: auto)")),
		mcp.WithBoolean("case_sensitive",
			mcp.Description("Compare names case-sensitively (default: false)")),
	), h.HandleComputeSimilarity)
}
