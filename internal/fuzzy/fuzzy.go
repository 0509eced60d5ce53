// Package fuzzy ranks clipboard entries against a query using a
// lightweight ordered-subsequence scorer: every query character must
// appear in order in the candidate text, and candidates are ordered by
// a score that rewards consecutive runs and word-boundary hits.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/clipvault/clipvault/internal/store"
)

// DebounceMillis is the recommended debounce for search-as-you-type
// callers wiring the ranker behind a text field.
const DebounceMillis = 120

// Rank returns the entries whose preview fuzzy-matches the query,
// ordered best score first. Ties keep their input order (stable sort).
// An empty or whitespace query returns the input unchanged.
func Rank(entries []*store.Entry, query string) []*store.Entry {
	q := strings.TrimSpace(query)
	if q == "" {
		return entries
	}

	pattern := []rune(strings.ToLower(q))
	type scored struct {
		entry *store.Entry
		score float64
	}
	var matches []scored
	for _, entry := range entries {
		if score, ok := Score(pattern, entry.Preview()); ok {
			matches = append(matches, scored{entry, score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]*store.Entry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out
}

// Score computes the match score for a lower-cased pattern against
// text. The second return is false when the pattern does not appear as
// an ordered subsequence of the text.
//
// Scoring, per matched character: base 1; a consecutive run earns a
// bonus that grows by 2 for each run member (2, 4, 6, ...); a gap of
// distance d > 1 resets the run and costs 0.05*d; matching the first
// character of the text or a character right after a space or newline
// earns a flat 1.5.
func Score(pattern []rune, text string) (float64, bool) {
	chars := []rune(strings.ToLower(text))
	if len(pattern) == 0 || len(pattern) > len(chars) {
		return 0, false
	}

	pi := 0
	lastMatch := -1
	consecutiveBonus := 0.0
	total := 0.0
	for i, c := range chars {
		if pi >= len(pattern) {
			break
		}
		if c != pattern[pi] {
			continue
		}

		distance := 0
		if lastMatch >= 0 {
			distance = i - lastMatch
		}

		score := 1.0
		if distance == 1 {
			consecutiveBonus += 2.0
			score += consecutiveBonus
		} else {
			consecutiveBonus = 0
			if distance > 0 {
				score -= float64(distance) * 0.05
			}
		}
		if i == 0 || chars[i-1] == ' ' || chars[i-1] == '\n' {
			score += 1.5
		}

		total += score
		lastMatch = i
		pi++
	}

	if pi != len(pattern) {
		return 0, false
	}
	return total, true
}
