// Package search scores and orders candidates from several entity types into
// one relevance-ranked, paginated list.
package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Score ladder.
const (
	ScoreExact     = 1.0
	ScorePrefix    = 0.9
	ScoreWord      = 0.8
	ScoreSubstring = 0.7
	scoreTokenBase = 0.5
	scoreTokenSpan = 0.2
)

// Score rates how well text matches query, in [0,1].
//
// A prefix match must end on a word boundary, so "lee" is a prefix of
// "Lee Academy" but only a substring of "Leeward School".
func Score(text, query string) float64 {
	t := strings.ToLower(strings.TrimSpace(text))
	q := strings.ToLower(strings.TrimSpace(query))
	if t == "" || q == "" {
		return 0
	}
	if t == q {
		return ScoreExact
	}
	if strings.HasPrefix(t, q) && endsWord(t, q) {
		return ScorePrefix
	}
	if wordMatch(t, q) {
		return ScoreWord
	}
	if strings.Contains(t, q) {
		return ScoreSubstring
	}
	return tokenOverlap(t, q)
}

func endsWord(t, q string) bool {
	return boundedAt(t, 0, len(q))
}

// wordMatch reports whether q occurs in t delimited by word boundaries.
func wordMatch(t, q string) bool {
	for i := 0; i <= len(t)-len(q); {
		j := strings.Index(t[i:], q)
		if j < 0 {
			return false
		}
		if boundedAt(t, i+j, len(q)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(t[i+j:])
		i += j + size
	}
	return false
}

// boundedAt reports whether t[i:i+n] sits on word boundaries at both
// ends. An edge of the match that is not a word rune is always bounded.
func boundedAt(t string, i, n int) bool {
	if first, _ := utf8.DecodeRuneInString(t[i:]); i > 0 && isWordRune(first) {
		if prev, _ := utf8.DecodeLastRuneInString(t[:i]); isWordRune(prev) {
			return false
		}
	}
	if last, _ := utf8.DecodeLastRuneInString(t[:i+n]); i+n < len(t) && isWordRune(last) {
		if next, _ := utf8.DecodeRuneInString(t[i+n:]); isWordRune(next) {
			return false
		}
	}
	return true
}

// tokenOverlap counts query words that are a substring of some text word or
// contain one.
func tokenOverlap(t, q string) float64 {
	qw := strings.Fields(q)
	tw := strings.Fields(t)
	if len(qw) == 0 || len(tw) == 0 {
		return 0
	}
	matched := 0
	for _, a := range qw {
		for _, b := range tw {
			if strings.Contains(b, a) || strings.Contains(a, b) {
				matched++
				break
			}
		}
	}
	if matched == 0 {
		return 0
	}
	return scoreTokenBase + float64(matched)/float64(len(qw)+len(tw))*scoreTokenSpan
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokens splits a query into lower-cased words.
func Tokens(query string) []string {
	return strings.Fields(strings.ToLower(query))
}
