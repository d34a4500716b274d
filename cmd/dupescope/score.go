package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dupescope/dupescope/domain"
	"github.com/dupescope/dupescope/internal/config"
)

// ScoreCommand handles the pairwise similarity CLI command
type ScoreCommand struct {
	algorithm     string
	caseSensitive bool
}

// NewScoreCommand creates a new score command
func NewScoreCommand() *ScoreCommand {
	return &ScoreCommand{
		algorithm: "auto",
	}
}

// CreateCobraCommand creates the Cobra command for pairwise similarity
func (c *ScoreCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score NAME_A NAME_B",
		Short: "Compute the similarity of two file names",
		Long: `Compute the similarity score of two file names under a chosen algorithm.

The score is a value between 0.0 (nothing in common) and 1.0 (identical).

Examples:
  dupescope score report_v1.txt report_v2.txt
  dupescope score -a levenshtein invoice.pdf lnvoice.pdf`,
		Args: cobra.ExactArgs(2),
		RunE: c.runScore,
	}

	cmd.Flags().StringVarP(&c.algorithm, config.FlagAlgorithm, "a", c.algorithm,
		"Similarity algorithm: levenshtein, jaro, token, substring, auto")
	cmd.Flags().BoolVar(&c.caseSensitive, config.FlagCaseSensitive, c.caseSensitive,
		"Enable case-sensitive matching")

	return cmd
}

// runScore executes the score command
func (c *ScoreCommand) runScore(cmd *cobra.Command, args []string) error {
	algorithm, err := domain.ParseAlgorithm(c.algorithm)
	if err != nil {
		return err
	}

	req := domain.DefaultGroupRequest()
	req.Algorithm = algorithm
	req.CaseSensitive = c.caseSensitive

	useCase, err := buildGroupUseCase(cmd, false)
	if err != nil {
		return fmt.Errorf("failed to create grouping engine: %w", err)
	}

	score, err := useCase.ComputeSimilarity(context.Background(), args[0], args[1], *req)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", score)
	return nil
}

// NewScoreCmd creates and returns the score cobra command
func NewScoreCmd() *cobra.Command {
	return NewScoreCommand().CreateCobraCommand()
}
