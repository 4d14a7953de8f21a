package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "yale", "yale", 100},
		{"empty left", "", "yale", 0},
		{"empty right", "yale", "", 0},
		{"both empty", "", "", 0},
		{"containment", "alabama", "alabama heersink", 90},
		{"containment reversed", "alabama heersink", "alabama", 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.a, tt.b))
		})
	}
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"ohio state university", "state university ohio"},
		{"wake forest", "wake forrest"},
		{"stanford", "stamford"},
		{"albany", "emory"},
	}
	for _, p := range pairs {
		assert.Equal(t, Score(p[0], p[1]), Score(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestScoreBounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "zzzzzzzzzz"},
		{"new york medicine", "rochester"},
		{"x", "x"},
	}
	for _, p := range pairs {
		s := Score(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, 100)
	}
}

func TestTokenOverlap(t *testing.T) {
	// Same tokens, different order: perfect overlap.
	assert.Equal(t, 100, TokenOverlap("ohio state university", "university ohio state"))
	// Two of three tokens shared with a two-token name: 2*2/(3+2) = 80.
	assert.Equal(t, 80, TokenOverlap("ohio state university", "ohio state"))
	assert.Equal(t, 0, TokenOverlap("yale", "brown"))
	assert.Equal(t, 0, TokenOverlap("", "yale"))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 100, Ratio("yale", "yale"))
	// One substitution in a seven-rune string: (7-1)*100/7 = 85.
	assert.Equal(t, 85, Ratio("stanford"[:7], "stamford"[:7]))
	assert.Equal(t, 0, Ratio("ab", "xy"))
}

func TestPartialRatio(t *testing.T) {
	// Exact substring scores a perfect partial match.
	assert.Equal(t, 100, PartialRatio("alabama", "university alabama heersink"))
	// Symmetric in argument order.
	assert.Equal(t,
		PartialRatio("wake forest", "wake forest bowman gray"),
		PartialRatio("wake forest bowman gray", "wake forest"))
	assert.Equal(t, 0, PartialRatio("", "yale"))
}
