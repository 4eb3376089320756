package search

import (
	"cmp"
	"slices"
	"strings"
)

// Suggestion is an autocomplete entry.
type Suggestion struct {
	Text  string `json:"text"`
	Type  Type   `json:"type"`
	Count int    `json:"count"`
}

// RankSuggestions deduplicates entries by case-insensitive text, summing
// counts, and orders by prefix match then count, both descending.
func RankSuggestions(query string, entries []Suggestion, limit int) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	idx := make(map[string]int, len(entries))
	out := make([]Suggestion, 0, len(entries))
	for _, e := range entries {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		k := strings.ToLower(text)
		if i, ok := idx[k]; ok {
			out[i].Count += e.Count
			continue
		}
		idx[k] = len(out)
		e.Text = text
		out = append(out, e)
	}

	prefix := func(s Suggestion) int {
		if strings.HasPrefix(strings.ToLower(s.Text), q) {
			return 1
		}
		return 0
	}
	slices.SortFunc(out, func(a, b Suggestion) int {
		if c := cmp.Compare(prefix(b), prefix(a)); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Text, b.Text)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
