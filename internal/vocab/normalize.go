package vocab

import (
	"strings"
)

// Normalize lowercases word and strips everything except ASCII letters,
// digits, underscores and the German umlauts and sharp s.
func Normalize(word string) string {
	lower := strings.ToLower(word)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if keepRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokens splits a line on whitespace and returns the non-empty normalized words
func Tokens(line string) []string {
	fields := strings.Fields(line)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if word := Normalize(field); word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func keepRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	}
	return strings.ContainsRune("äöüßÄÖÜ", r)
}
