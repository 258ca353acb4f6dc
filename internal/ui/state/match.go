package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchIndex returns the index of the item that best matches query, or -1.
// Exact matches win over prefixes, prefixes over substrings, and substrings
// over fuzzy matches.
func (l *SelectableList) MatchIndex(query string) int {
	return BestMatchIndex(l.items, query)
}

// BestMatchIndex ranks items against query.
func BestMatchIndex(items []string, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(items) == 0 {
		return -1
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item), lower) {
			return i
		}
	}
	for i, item := range items {
		if strings.Contains(strings.ToLower(item), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, items)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(items) {
		return -1
	}
	return best.OriginalIndex
}
