package domain

import (
	"strings"
)

// NormalizeSpecies returns the comparison key for a species name: trimmed,
// lowercased, with every whitespace run folded to a single space.
// Punctuation and diacritics are kept ("Mr. Mime", "Flabébé").
func NormalizeSpecies(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
