package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"

	"github.com/dupescope/dupescope/domain"
)

// Jaro-Winkler parameters (standard values)
const (
	jaroWinklerBoostThreshold = 0.7
	jaroWinklerPrefixSize     = 4
)

// Auto-algorithm blend weights. Names containing delimiters lean on token
// overlap; plain names lean on character-level metrics.
const (
	delimTokenWeight = 0.6
	delimJaroWeight  = 0.3
	delimLevWeight   = 0.1

	plainJaroWeight  = 0.5
	plainLevWeight   = 0.3
	plainTokenWeight = 0.2
)

// Score computes the similarity of two names under the given algorithm.
// The result is always in [0,1] and symmetric in a and b. When caseSensitive
// is false both inputs are lower-cased before comparison.
func Score(a, b string, algorithm domain.Algorithm, caseSensitive bool) float64 {
	if !caseSensitive {
		a = strings.ToLower(a)
		b = strings.ToLower(b)
	}

	if a == b {
		return 1.0
	}

	switch algorithm {
	case domain.AlgorithmLevenshtein:
		return levenshteinSimilarity(a, b)
	case domain.AlgorithmJaro:
		return jaroWinklerSimilarity(a, b)
	case domain.AlgorithmToken:
		return tokenSimilarity(a, b)
	case domain.AlgorithmSubstring:
		return substringSimilarity(a, b)
	default:
		return autoSimilarity(a, b)
	}
}

// levenshteinSimilarity normalizes edit distance by the longer input length
func levenshteinSimilarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

func jaroWinklerSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	return smetrics.JaroWinkler(a, b, jaroWinklerBoostThreshold, jaroWinklerPrefixSize)
}

// tokenSimilarity is the Jaccard similarity of the alphanumeric token sets
func tokenSimilarity(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)

	if len(tokensA) == 0 && len(tokensB) == 0 {
		return 1.0
	}
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	setA := make(map[string]struct{}, len(tokensA))
	for _, t := range tokensA {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(tokensB))
	for _, t := range tokensB {
		setB[t] = struct{}{}
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

// tokenize splits a name into maximal runs of alphanumeric characters
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// substringSimilarity strips the file extension and all non-alphanumeric
// characters from both names, then scores containment of the shorter
// normalized name in the longer one by their length ratio.
func substringSimilarity(a, b string) float64 {
	na := normalizeForSubstring(a)
	nb := normalizeForSubstring(b)

	if na == "" && nb == "" {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}

	shorter, longer := na, nb
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}

	if strings.Contains(longer, shorter) {
		return float64(utf8.RuneCountInString(shorter)) / float64(utf8.RuneCountInString(longer))
	}
	return 0.0
}

// normalizeForSubstring drops everything from the last '.' onward and keeps
// only lower-cased alphanumeric characters.
func normalizeForSubstring(s string) string {
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		s = s[:idx]
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// autoSimilarity blends the character and token metrics, weighting token
// overlap higher for delimited names like "report_v1.pdf".
func autoSimilarity(a, b string) float64 {
	lev := levenshteinSimilarity(a, b)
	jaro := jaroWinklerSimilarity(a, b)
	token := tokenSimilarity(a, b)

	if hasDelimiters(a) || hasDelimiters(b) {
		return token*delimTokenWeight + jaro*delimJaroWeight + lev*delimLevWeight
	}
	return jaro*plainJaroWeight + lev*plainLevWeight + token*plainTokenWeight
}

func hasDelimiters(s string) bool {
	return strings.ContainsAny(s, "_- ")
}

// NormalizedNameSimilarity is the metric behind the content-aware tiers:
// Levenshtein similarity of the names reduced to lower-cased alphanumeric
// characters (no extension stripping). Distinct from the Auto algorithm.
func NormalizedNameSimilarity(a, b string) float64 {
	na := normalizeName(a)
	nb := normalizeName(b)

	if na == nb {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}
	return levenshteinSimilarity(na, nb)
}

// normalizeName keeps only lower-cased alphanumeric characters
func normalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
