package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeWord returns the canonical key for a single recognized word.
// Text is NFC-composed, lowercased and trimmed.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	return cases.Lower(language.Und).String(norm.NFC.String(word))
}

// Words lowercases text and splits it on whitespace. Duplicates and order
// are preserved.
func Words(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if w := NormalizeWord(field); w != "" {
			out = append(out, w)
		}
	}
	return out
}
