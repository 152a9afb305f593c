// Package search ranks in-memory records against a free-text query using
// weighted exact and fuzzy field matches.
package search

import (
	"slices"
	"strings"

	"github.com/sjperalta/clientpulse-api/internal/fieldpath"
)

// fuzzyPenalty keeps every fuzzy hit ranked below an exact hit on the same field.
const fuzzyPenalty = 0.8

// Field configures how one (possibly dotted) field participates in ranking
type Field struct {
	Key          string  `json:"key"`
	Weight       float64 `json:"weight"`
	DisableFuzzy bool    `json:"disable_fuzzy"`
	Threshold    float64 `json:"threshold"`
}

func (f Field) threshold() float64 {
	if f.Threshold <= 0 {
		return DefaultThreshold
	}
	return f.Threshold
}

// Result wraps a matched item with its relevance
type Result[T any] struct {
	Item          T        `json:"item"`
	Score         float64  `json:"score"`
	MatchedFields []string `json:"matched_fields"`
}

// Search ranks items against query. A blank query returns every item with
// score 1 in input order. Otherwise each item scores the highest weighted
// field score it reaches; items scoring zero are dropped, ties keep input
// order, and maxResults > 0 truncates the ranking.
func Search[T any](items []T, query string, fields []Field, maxResults int) []Result[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		results := make([]Result[T], len(items))
		for i, item := range items {
			results[i] = Result[T]{Item: item, Score: 1, MatchedFields: []string{}}
		}
		return results
	}

	results := make([]Result[T], 0, len(items))
	for _, item := range items {
		score, matched := scoreItem(item, q, fields)
		if score <= 0 {
			continue
		}
		results = append(results, Result[T]{Item: item, Score: score, MatchedFields: matched})
	}

	slices.SortStableFunc(results, func(a, b Result[T]) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// scoreItem expects q to be trimmed and lowercased.
func scoreItem(item any, q string, fields []Field) (float64, []string) {
	best := 0.0
	matched := []string{}
	for _, f := range fields {
		raw, ok := fieldpath.Lookup(item, f.Key)
		if !ok {
			continue
		}
		text, ok := fieldpath.Text(raw)
		if !ok {
			continue
		}

		score := fieldScore(q, strings.ToLower(text), f) * f.Weight
		if score > 0 {
			matched = append(matched, f.Key)
			best = max(best, score)
		}
	}
	return best, matched
}

// fieldScore ranks one field. A fuzzy hit must exceed the field threshold;
// FuzzyMatch also accepts similarity equal to it.
func fieldScore(q, text string, f Field) float64 {
	exact, sim, ok := compare(q, text, !f.DisableFuzzy)
	switch {
	case exact:
		return 1
	case ok && sim > f.threshold():
		return sim * fuzzyPenalty
	}
	return 0
}
