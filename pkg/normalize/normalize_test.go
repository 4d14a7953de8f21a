package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "YALE", "yale"},
		{"strip school of medicine", "Yale School of Medicine", "yale"},
		{"strip college of medicine", "Baylor College of Medicine", "baylor"},
		{"strip medical college", "Albany Medical College", "albany"},
		{"strip medical school", "Harvard Medical School", "harvard"},
		{"strip osteopathic", "Touro College of Osteopathic Medicine", "touro"},
		{"strip the prefix", "The Ohio State University", "ohio state university"},
		{"strip university of", "University of Alabama", "alabama"},
		{"strip college of", "College of Charleston", "charleston"},
		{"chained prefixes", "The University of Chicago", "chicago"},
		{"punctuation", "Icahn School of Medicine at Mount Sinai!", "icahn school of medicine at mount sinai"},
		{"hyphens and commas", "Texas A&M, College Station", "texas a m college station"},
		{"collapse whitespace", "  Stanford   University  ", "stanford university"},
		{"expand med", "Johns Hopkins Med", "johns hopkins medicine"},
		{"expand univ", "Univ of Vermont", "vermont"},
		{"diacritics", "Université Laval", "universite laval"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.input))
		})
	}
}

func TestKeyIdempotent(t *testing.T) {
	inputs := []string{
		"Yale School of Medicine",
		"The University of Chicago",
		"Univ of Vermont",
		"Harvard Medical School",
		"Texas A&M, College Station",
		"Université de Montréal",
		"",
	}
	for _, in := range inputs {
		once := Key(in)
		assert.Equal(t, once, Key(once), "Key should be idempotent for %q", in)
	}
}

func TestKeyEquivalentForms(t *testing.T) {
	// Different renderings of the same school collapse to one key.
	pairs := [][2]string{
		{"Yale School of Medicine", "yale"},
		{"The University of Vermont", "Univ of Vermont"},
		{"Wake Forest School of Medicine", "Wake Forest"},
	}
	for _, p := range pairs {
		assert.Equal(t, Key(p[0]), Key(p[1]), "%q vs %q", p[0], p[1])
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"johns", "hopkins"}, Tokens("Johns Hopkins School of Medicine"))
	assert.Empty(t, Tokens("  "))
}
