// Package normalize produces canonical comparison keys for institution names.
// Two names that refer to the same school should map to the same key even
// when one of them carries boilerplate ("The", "School of Medicine"),
// abbreviations ("Univ", "Med"), punctuation, or accented characters.
//
// The transform is deterministic and idempotent: Key(Key(s)) == Key(s).
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// leadingNoise lists prefixes stripped from the front of a name, applied in
// order. Each prefix is removed at most once.
var leadingNoise = []string{
	"the ",
	"university of ",
	"college of ",
}

// trailingNoise lists suffixes stripped from the end of a name, applied in
// order. Longer variants come first so "school of medicine" wins over "school".
var trailingNoise = []string{
	" school of medicine",
	" college of medicine",
	" college of osteopathic medicine",
	" school of osteopathic medicine",
	" medical college",
	" medical school",
	" of medicine",
	" school",
	" college",
}

// abbreviations maps shorthand tokens to their full forms.
var abbreviations = map[string]string{
	"med":  "medicine",
	"univ": "university",
	"u":    "university",
}

// foldDiacritics strips combining marks so "José" and "Jose" compare equal.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Key converts a raw institution name into its canonical comparison key.
// The empty string and whitespace-only input map to the empty key.
func Key(raw string) string {
	s, _, err := transform.String(foldDiacritics, raw)
	if err != nil {
		s = raw
	}
	s = strings.ToLower(s)
	s = stripPunctuation(s)
	s = collapseSpaces(s)
	// Expand before stripping noise so "Univ of X" reduces the same way
	// "University of X" does.
	s = expandAbbreviations(s)

	for _, prefix := range leadingNoise {
		s = strings.TrimPrefix(s, prefix)
	}
	for _, suffix := range trailingNoise {
		s = strings.TrimSuffix(s, suffix)
	}

	return strings.TrimSpace(s)
}

// Tokens splits a raw name into its normalized tokens.
func Tokens(raw string) []string {
	return strings.Fields(Key(raw))
}

// stripPunctuation replaces every non-letter, non-digit rune with a space.
func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// collapseSpaces reduces runs of whitespace to single spaces and trims ends.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// expandAbbreviations rewrites known shorthand tokens to their full forms.
func expandAbbreviations(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		if full, ok := abbreviations[f]; ok {
			fields[i] = full
		}
	}
	return strings.Join(fields, " ")
}
