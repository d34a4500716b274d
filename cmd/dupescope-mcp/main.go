package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dupescope/dupescope/internal/config"
	"github.com/dupescope/dupescope/internal/version"
	"github.com/dupescope/dupescope/mcp"
)

const serverName = "dupescope"

func main() {
	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration via the usual discovery chain; a broken config file
	// must not keep the server from starting
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Printf("Warning: failed to load configuration, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	handlers := mcp.NewHandlerSet(mcp.NewDependencies(cfg, ""))
	mcp.RegisterTools(server, handlers)

	log.Printf("Starting %s MCP server %s\n", serverName, version.Short())
	log.Println("Registered tools:")
	log.Println("  - group_files: filename similarity grouping")
	log.Println("  - find_duplicates: content-aware duplicate detection")
	log.Println("  - compute_similarity: pairwise name similarity")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
