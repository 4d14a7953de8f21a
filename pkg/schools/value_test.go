package schools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain", "3.85", 3.85, true},
		{"integer", "510", 510, true},
		{"range takes first", "3.7-3.9", 3.7, true},
		{"en dash range", "505–515", 505, true},
		{"trailing plus", "500+", 500, true},
		{"whitespace", "  3.6 ", 3.6, true},
		{"not reported", "NR", 0, false},
		{"not reported lowercase", "nr", 0, false},
		{"empty", "", 0, false},
		{"text", "varies by program", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFloat(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	got, ok := ParseInt("510.5")
	assert.True(t, ok)
	assert.Equal(t, 510, got)

	_, ok = ParseInt("NR")
	assert.False(t, ok)
}

func TestAttrsReported(t *testing.T) {
	a := Attrs{
		AttrAvgGPA:       "3.8",
		AttrAvgMCAT:      "NR",
		AttrMinMCATNotes: "",
	}

	assert.True(t, a.Reported(AttrAvgGPA))
	assert.False(t, a.Reported(AttrAvgMCAT), "NR is not a usable value")
	assert.False(t, a.Reported(AttrMinMCATNotes))
	assert.False(t, a.Reported(AttrAppSystem), "absent key")

	// NR still counts as populated so enrichment won't overwrite it.
	assert.True(t, a.Populated(AttrAvgMCAT))
	assert.False(t, a.Populated(AttrMinMCATNotes))
	assert.False(t, a.Populated(AttrAppSystem))
}

func TestAttrsTypedAccessors(t *testing.T) {
	a := Attrs{
		AttrAvgGPA:  "3.7-3.9",
		AttrAvgMCAT: "515+",
		AttrMDPhD:   "Yes",
	}

	gpa, ok := a.Float(AttrAvgGPA)
	assert.True(t, ok)
	assert.InDelta(t, 3.7, gpa, 1e-9)

	mcat, ok := a.Int(AttrAvgMCAT)
	assert.True(t, ok)
	assert.Equal(t, 515, mcat)

	mdphd, ok := a.Bool(AttrMDPhD)
	assert.True(t, ok)
	assert.True(t, mdphd)

	_, ok = a.Bool(AttrCasperRequired)
	assert.False(t, ok)
}

func TestAttrsCopyIsIndependent(t *testing.T) {
	orig := Attrs{AttrAvgGPA: "3.8"}
	dup := orig.Copy()
	dup[AttrAvgGPA] = "4.0"
	assert.Equal(t, "3.8", orig[AttrAvgGPA])
}

func TestKnownAttrs(t *testing.T) {
	assert.True(t, KnownAttr(AttrAvgGPA))
	assert.False(t, KnownAttr("tuition"))

	keys := KnownAttrs()
	assert.Len(t, keys, len(knownAttrs))
	assert.True(t, slicesAreSorted(keys))
}

func slicesAreSorted(keys []AttrKey) bool {
	for i := 1; i < len(keys); i++ {
		if keys[i] < keys[i-1] {
			return false
		}
	}
	return true
}
