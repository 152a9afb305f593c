package search

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the similarity a fuzzy match must reach when a field does not set its own.
const DefaultThreshold = 0.6

// minFuzzyLength keeps one- and two-letter queries from fuzzy-matching everything.
const minFuzzyLength = 3

// Distance computes the case-insensitive Levenshtein distance between a and b.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(strings.ToLower(a), strings.ToLower(b))
}

// Similarity returns 1 - distance/maxLen, in [0,1]. Two empty strings are identical.
func Similarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1
	}
	return float64(maxLen-Distance(a, b)) / float64(maxLen)
}

// FuzzyMatch reports whether query matches target. Substring containment always
// matches; otherwise queries of at least three characters match when their
// similarity reaches threshold.
func FuzzyMatch(query, target string, threshold float64) bool {
	exact, sim, ok := compare(strings.ToLower(query), strings.ToLower(target), true)
	return exact || (ok && sim >= threshold)
}

// compare expects lowercased input. exact is set on substring containment;
// otherwise ok reports whether a fuzzy similarity was computed.
func compare(q, text string, allowFuzzy bool) (exact bool, sim float64, ok bool) {
	if strings.Contains(text, q) {
		return true, 1, false
	}
	if !allowFuzzy || len([]rune(q)) < minFuzzyLength {
		return false, 0, false
	}
	return false, Similarity(q, text), true
}
