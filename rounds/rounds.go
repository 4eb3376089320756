// Package rounds maps free-text tournament round labels to a canonical rank
// used for ordering matches and for All-American detection.
package rounds

import (
	"cmp"
	"strings"
)

// Unranked is returned for labels that match nothing. It sorts last.
const Unranked = 99

// Ranks with meaning outside plain ordering.
const (
	RankChampionship = 6
	RankPlacement    = 15
)

var exact = map[string]int{
	"champ 64": 1,
	"champ 32": 2,
	"champ 16": 3,
	"champ 8":  4,
	"champ 4":  5,

	"1st": 6,
	"2nd": 7,

	"consi 32 #2": 8,
	"consi 16 #1": 9,
	"consi 16 #2": 10,
	"consi 8 #1":  11,
	"consi 8 #2":  12,
	"consi 4 #1":  13,
	"consi 4 #2":  14,

	"3rd": 15,
	"5th": 15,
	"7th": 15,

	"r1": 16,
	"r2": 16,
	"r3": 16,
	"r4": 16,
	"r5": 16,
	"r6": 16,
	"r7": 16,
}

type pattern struct {
	rank  int
	match func(string) bool
}

func containsAny(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

// Evaluated in order, first hit wins.
var fallbacks = []pattern{
	{1, containsAny("64")},
	{2, containsAny("32")},
	{3, containsAny("16")},
	{4, containsAny("quarter", "8")},
	{5, containsAny("semi", "4")},
	{6, func(s string) bool { return strings.Contains(s, "final") && !strings.Contains(s, "semi") }},
	{6, containsAny("1st", "first")},
	{7, containsAny("2nd", "second")},
	{15, containsAny("3rd", "third")},
	{10, containsAny("consol")},
	{0, containsAny("pre", "qualifier")},
}

// Normalize trims and lower-cases a label and collapses inner whitespace.
func Normalize(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

// Rank returns the canonical rank of a round label. It never fails.
func Rank(label string) int {
	r, _ := Lookup(label)
	return r
}

// Lookup is Rank plus whether the label matched the exact table or a
// fallback pattern. ok is false only for Unranked.
func Lookup(label string) (rank int, ok bool) {
	n := Normalize(label)
	if n == "" {
		return Unranked, false
	}
	if r, hit := exact[n]; hit {
		return r, true
	}
	for _, p := range fallbacks {
		if p.match(n) {
			return p.rank, true
		}
	}
	return Unranked, false
}

// IsPlacement reports whether rank marks an All-American placement round.
func IsPlacement(rank int) bool {
	return rank == RankChampionship || rank == RankPlacement
}

// Compare orders labels by rank, then by label text.
func Compare(a, b string) int {
	if c := cmp.Compare(Rank(a), Rank(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

// Less reports whether label a sorts before label b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}
