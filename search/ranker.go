package search

import (
	"cmp"
	"slices"
)

// Type is an entity kind that can appear in results.
type Type string

const (
	TypeWrestler   Type = "wrestler"
	TypeSchool     Type = "school"
	TypeTournament Type = "tournament"
)

// Types lists every searchable type in a fixed order.
var Types = []Type{TypeWrestler, TypeSchool, TypeTournament}

// ParseType validates a type filter. An empty string means all types.
func ParseType(s string) (Type, bool) {
	if s == "" {
		return "", true
	}
	for _, t := range Types {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Field weights. Secondary fields are discounted so a name match always
// outranks an affiliation match.
const (
	WeightPrimary  = 1.0
	WeightMascot   = 0.8
	WeightLocation = 0.7
	WeightSchool   = 0.6
)

// Field is one searchable text of a candidate.
type Field struct {
	Text   string
	Weight float64
}

// Candidate is an entity that loosely matched the query upstream.
type Candidate struct {
	Type     Type
	ID       string
	Title    string
	Subtitle string
	Metadata map[string]any
	Fields   []Field
}

// Result is a scored candidate.
type Result struct {
	ID             string         `json:"id"`
	Type           Type           `json:"type"`
	Title          string         `json:"title"`
	Subtitle       string         `json:"subtitle,omitempty"`
	RelevanceScore float64        `json:"relevanceScore"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Relevance is the max weighted field score of c against query.
func Relevance(c Candidate, query string) float64 {
	best := 0.0
	for _, f := range c.Fields {
		if s := Score(f.Text, query) * f.Weight; s > best {
			best = s
		}
	}
	return best
}

// Rank scores every candidate, drops those scoring zero, keeps one result per
// (type, id) and orders by descending score, then title.
func Rank(query string, candidates []Candidate) []Result {
	type key struct {
		t  Type
		id string
	}
	best := make(map[key]int, len(candidates))
	out := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		s := Relevance(c, query)
		if s <= 0 {
			continue
		}
		k := key{c.Type, c.ID}
		if i, ok := best[k]; ok {
			if s > out[i].RelevanceScore {
				out[i].RelevanceScore = s
			}
			continue
		}
		best[k] = len(out)
		out = append(out, Result{
			ID:             c.ID,
			Type:           c.Type,
			Title:          c.Title,
			Subtitle:       c.Subtitle,
			RelevanceScore: s,
			Metadata:       c.Metadata,
		})
	}
	slices.SortFunc(out, compareResults)
	return out
}

func compareResults(a, b Result) int {
	if c := cmp.Compare(b.RelevanceScore, a.RelevanceScore); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Type, b.Type); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Paginate returns the pool size and the window [offset, offset+limit).
func Paginate[T any](items []T, offset, limit int) (int, []T) {
	total := len(items)
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset >= total {
		return total, []T{}
	}
	end := min(offset+limit, total)
	return total, items[offset:end]
}
