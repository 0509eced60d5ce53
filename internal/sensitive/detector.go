// Package sensitive holds the heuristics that decide whether clipboard
// text looks like a password or token. The verdict only controls
// whether and how long the text is stored; it never alters display.
package sensitive

import (
	"strings"
	"unicode"
)

// minLength is the minimum trimmed length to consider at all.
const minLength = 16

// mixedLength is the minimum length for the mixed letters-plus-digits
// or-symbols fallback check.
const mixedLength = 20

// IsSensitive reports whether text looks like a password or token.
// It is a deliberate "looks like a secret" heuristic: checks are
// case-sensitive as written, with no Unicode folding or locale
// awareness, and a false negative is acceptable.
func IsSensitive(text string) bool {
	t := strings.TrimSpace(text)
	runes := []rune(t)
	if len(runes) < minLength {
		return false
	}

	if matchesKnownPatterns(t, runes) {
		return true
	}

	// Long mixed alphanumeric + symbols
	hasLetter := false
	hasDigit := false
	hasSymbol := false
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsNumber(r):
			hasDigit = true
		case !unicode.IsSpace(r):
			hasSymbol = true
		}
	}
	return hasLetter && (hasDigit || hasSymbol) && len(runes) >= mixedLength
}

// matchesKnownPatterns checks well-known credential shapes.
func matchesKnownPatterns(t string, runes []rune) bool {
	n := len(runes)

	// bcrypt hash
	if strings.HasPrefix(t, "$2") && n >= 50 {
		return true
	}
	// JWT / JSON-like token
	if strings.HasPrefix(t, "eyJ") ||
		(strings.HasPrefix(t, "{") && strings.Contains(t, `"`) && n > 40) {
		return true
	}
	// GitHub tokens
	if strings.HasPrefix(t, "ghp_") || strings.HasPrefix(t, "gho_") {
		return true
	}
	// Slack tokens
	if strings.HasPrefix(t, "xoxb-") || strings.HasPrefix(t, "xoxp-") {
		return true
	}
	// AWS access key
	if strings.HasPrefix(t, "AKIA") && n == 20 {
		return true
	}
	// Long hex string
	if n >= 32 && allHexOrSpace(runes) {
		return true
	}
	return false
}

func allHexOrSpace(runes []rune) bool {
	for _, r := range runes {
		if isHexDigit(r) || unicode.IsSpace(r) {
			continue
		}
		return false
	}
	return true
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}
