package filter

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admitmap/admitmap/pkg/schools"
)

func testSchools() []*schools.School {
	return []*schools.School{
		{
			ID: "yale", Name: "Yale School of Medicine", State: "CT",
			Degree: schools.DegreeMD, Ownership: schools.OwnershipPrivate,
			Attrs: schools.Attrs{
				schools.AttrAvgGPA:    "3.92",
				schools.AttrAvgMCAT:   "519",
				schools.AttrAppSystem: "AMCAS",
				schools.AttrMDPhD:     "Yes",
			},
		},
		{
			ID: "kansas", Name: "University of Kansas School of Medicine", State: "KS",
			Degree: schools.DegreeMD, Ownership: schools.OwnershipPublic,
			Attrs: schools.Attrs{
				schools.AttrAvgGPA:         "3.85",
				schools.AttrAvgMCAT:        "508",
				schools.AttrAppSystem:      "AMCAS",
				schools.AttrMDPhD:          "Yes",
				schools.AttrCasperRequired: "No",
			},
		},
		{
			ID: "des-moines", Name: "Des Moines University College of Osteopathic Medicine", State: "IA",
			Degree: schools.DegreeDO, Ownership: schools.OwnershipPrivate,
			Attrs: schools.Attrs{
				schools.AttrAppSystem: "AACOMAS",
				schools.AttrMDPhD:     "No",
			},
		},
	}
}

func parse(t *testing.T, query string) SchoolFilter {
	t.Helper()
	return ParseSchoolFilter(httptest.NewRequest("GET", "/api/v1/schools?"+query, nil))
}

func ids(list []*schools.School) []schools.SchoolID {
	out := make([]schools.SchoolID, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestFilterByState(t *testing.T) {
	got := parse(t, "state=ks").Apply(testSchools())
	assert.Equal(t, []schools.SchoolID{"kansas"}, ids(got))
}

func TestFilterByDegree(t *testing.T) {
	got := parse(t, "degree=do").Apply(testSchools())
	assert.Equal(t, []schools.SchoolID{"des-moines"}, ids(got))
}

func TestFilterByOwnership(t *testing.T) {
	got := parse(t, "ownership=PUBLIC").Apply(testSchools())
	assert.Equal(t, []schools.SchoolID{"kansas"}, ids(got))
}

func TestFilterByNameContains(t *testing.T) {
	// Matching runs over normalized keys, so noise words don't interfere.
	got := parse(t, "name_contains=des+moines").Apply(testSchools())
	assert.Equal(t, []schools.SchoolID{"des-moines"}, ids(got))
}

func TestFilterByAppSystem(t *testing.T) {
	got := parse(t, "app_system=aacomas").Apply(testSchools())
	assert.Equal(t, []schools.SchoolID{"des-moines"}, ids(got))
}

func TestFilterByMDPhD(t *testing.T) {
	got := parse(t, "mdphd=false").Apply(testSchools())
	assert.Equal(t, []schools.SchoolID{"des-moines"}, ids(got))
}

func TestFilterByGPARange(t *testing.T) {
	got := parse(t, "min_gpa=3.9").Apply(testSchools())
	assert.Equal(t, []schools.SchoolID{"yale"}, ids(got),
		"schools without a reported GPA are excluded by range filters")

	got = parse(t, "max_gpa=3.9").Apply(testSchools())
	assert.Equal(t, []schools.SchoolID{"kansas"}, ids(got))
}

func TestFilterByMCATRange(t *testing.T) {
	got := parse(t, "min_mcat=500&max_mcat=510").Apply(testSchools())
	assert.Equal(t, []schools.SchoolID{"kansas"}, ids(got))
}

func TestFilterCombined(t *testing.T) {
	got := parse(t, "degree=MD&ownership=private&min_mcat=515").Apply(testSchools())
	assert.Equal(t, []schools.SchoolID{"yale"}, ids(got))
}

func TestFilterNoCriteriaReturnsAll(t *testing.T) {
	got := parse(t, "").Apply(testSchools())
	assert.Len(t, got, 3)
}

func TestFilterPagination(t *testing.T) {
	got := parse(t, "limit=2").Apply(testSchools())
	require.Len(t, got, 2)

	got = parse(t, "offset=2").Apply(testSchools())
	assert.Equal(t, []schools.SchoolID{"des-moines"}, ids(got))

	got = parse(t, "offset=99").Apply(testSchools())
	assert.Empty(t, got)
}
