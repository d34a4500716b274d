package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dupescope/dupescope/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "dupescope",
	Short: "Group files by name and content similarity",
	Long: `dupescope groups files whose names or contents look alike, helping you
spot duplicated downloads, versioned copies, and stray renames.

Features:
  • Five name similarity algorithms (levenshtein, jaro, token, substring, auto)
  • Transitive closure grouping over a configurable threshold
  • Content-aware duplicate detection with identical/content/name tiers
  • Text, JSON, YAML, and CSV output`,
	Version: version.Short(),
}

func init() {
	rootCmd.AddCommand(NewGroupCmd())
	rootCmd.AddCommand(NewDupesCmd())
	rootCmd.AddCommand(NewScoreCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
