package domain

import (
	"fmt"
	"strings"
)

// Algorithm selects the string similarity metric used for filename comparison
type Algorithm string

const (
	// AlgorithmLevenshtein - normalized edit distance
	AlgorithmLevenshtein Algorithm = "levenshtein"
	// AlgorithmJaro - Jaro-Winkler similarity with prefix bonus
	AlgorithmJaro Algorithm = "jaro"
	// AlgorithmToken - Jaccard similarity over alphanumeric token sets
	AlgorithmToken Algorithm = "token"
	// AlgorithmSubstring - containment ratio of extension-stripped names
	AlgorithmSubstring Algorithm = "substring"
	// AlgorithmAuto - weighted blend chosen by name structure
	AlgorithmAuto Algorithm = "auto"
)

// ParseAlgorithm parses an algorithm name, case-insensitively
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case "levenshtein":
		return AlgorithmLevenshtein, nil
	case "jaro", "jaro-winkler", "jarowinkler":
		return AlgorithmJaro, nil
	case "token":
		return AlgorithmToken, nil
	case "substring":
		return AlgorithmSubstring, nil
	case "auto":
		return AlgorithmAuto, nil
	default:
		return "", fmt.Errorf("unsupported algorithm: %s (supported: levenshtein, jaro, token, substring, auto)", s)
	}
}

// IsValid reports whether the algorithm is one of the supported variants
func (a Algorithm) IsValid() bool {
	switch a {
	case AlgorithmLevenshtein, AlgorithmJaro, AlgorithmToken, AlgorithmSubstring, AlgorithmAuto:
		return true
	default:
		return false
	}
}

// Strategy selects the clustering algorithm
type Strategy string

const (
	// StrategyTransitive - filename-only grouping with transitive closure
	// over the thresholded similarity relation
	StrategyTransitive Strategy = "name"
	// StrategyTiered - content-aware grouping using the three-tier
	// hash/size/name detection system, strictly pairwise against the anchor
	StrategyTiered Strategy = "content"
)

// ParseStrategy parses a strategy name, case-insensitively
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "name", "transitive":
		return StrategyTransitive, nil
	case "content", "tiered":
		return StrategyTiered, nil
	default:
		return "", fmt.Errorf("unsupported strategy: %s (supported: name, content)", s)
	}
}

// Tier identifies which detection rule matched first for a content-aware group
type Tier string

const (
	// TierIdentical - byte-identical content (equal SHA-256 digests)
	TierIdentical Tier = "identical"
	// TierContent - equal sizes with normalized name similarity above 0.8
	TierContent Tier = "content"
	// TierName - normalized name similarity above 0.9
	TierName Tier = "name"
)
