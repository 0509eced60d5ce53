package store

import (
	"sort"
	"strings"
)

// NormalizeTags trims every tag, drops empties, removes duplicates, and
// sorts the result lexicographically. This is the canonical form every
// write path persists.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	sort.Strings(out)
	return out
}

// JoinTags serializes a normalized tag set as a comma-joined string.
// An empty set serializes as the empty string (stored as absent).
func JoinTags(tags []string) string {
	return strings.Join(NormalizeTags(tags), ",")
}

// SplitTags parses a comma-joined tag string back into a normalized set.
func SplitTags(s string) []string {
	if s == "" {
		return nil
	}
	return NormalizeTags(strings.Split(s, ","))
}

// HasTag reports whether the normalized tag set contains tag.
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
