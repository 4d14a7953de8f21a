// Package similarity scores how alike two normalized institution names are
// on a 0-100 integer scale. Scores combine several metrics and take the
// maximum, so a name pair that looks identical under any one lens scores
// high even when the others disagree.
package similarity

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	// ExactScore is awarded when the two keys are byte-identical.
	ExactScore = 100

	// ContainmentScore is awarded when one key contains the other as a
	// substring, e.g. "alabama" inside "alabama heersink".
	ContainmentScore = 90
)

// Score returns the similarity between two normalized name keys as an
// integer in [0, 100]. It is symmetric: Score(a, b) == Score(b, a).
// Empty input never matches anything, including another empty string.
func Score(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return ExactScore
	}

	best := Ratio(a, b)
	if strings.Contains(a, b) || strings.Contains(b, a) {
		if ContainmentScore > best {
			best = ContainmentScore
		}
	}
	if overlap := TokenOverlap(a, b); overlap > best {
		best = overlap
	}
	return best
}

// Ratio returns edit-distance similarity: 100 means identical, 0 means the
// strings share nothing. Based on Levenshtein distance over runes.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return (longest - dist) * 100 / longest
}

// TokenOverlap returns the Sørensen–Dice coefficient over the
// whitespace-delimited token sets of a and b, scaled to [0, 100].
// Order-insensitive, so "state university ohio" matches "ohio state
// university" perfectly.
func TokenOverlap(a, b string) int {
	ta, tb := strings.Fields(a), strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	seen := make(map[string]int, len(ta))
	for _, tok := range ta {
		seen[tok]++
	}
	shared := 0
	for _, tok := range tb {
		if seen[tok] > 0 {
			seen[tok]--
			shared++
		}
	}
	return 2 * shared * 100 / (len(ta) + len(tb))
}

// PartialRatio returns the best Ratio between the shorter string and any
// same-length window of the longer one. A high value signals that the
// shorter name is embedded, possibly with small typos, in the longer.
func PartialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	short, long := ra, rb
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == len(long) {
		return Ratio(string(short), string(long))
	}

	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		window := string(long[i : i+len(short)])
		if r := Ratio(string(short), window); r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}
