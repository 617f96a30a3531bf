package search

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// FuzzyScore scores query against a candidate name. It returns ok=false
// exactly when the case-folded query is not a subsequence of the case-folded
// candidate. Matched indexes point into the candidate and are only used for
// highlighting.
//
// Scoring is delegated to sahilm/fuzzy (the fzf-style ranker): consecutive
// runs, word-boundary hits and shorter candidates score higher, and scores
// form a total order usable for sorting.
func FuzzyScore(query, candidate string) (score int, indexes []int, ok bool) {
	if query == "" {
		return 0, nil, false
	}
	matches := fuzzy.Find(query, []string{candidate})
	if len(matches) == 0 {
		return 0, nil, false
	}
	m := matches[0]
	return m.Score, m.MatchedIndexes, true
}

// SubstringMatch reports whether the case-folded candidate contains the
// case-folded query.
func SubstringMatch(query, candidate string) bool {
	if query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(candidate), strings.ToLower(query))
}
