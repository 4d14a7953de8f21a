package enrich

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admitmap/admitmap/pkg/logging"
	"github.com/admitmap/admitmap/pkg/resolve"
	"github.com/admitmap/admitmap/pkg/schools"
	"github.com/admitmap/admitmap/pkg/sources"
)

func testRegistry(t *testing.T) *schools.Registry {
	t.Helper()
	reg, err := schools.NewRegistry([]*schools.School{
		{
			ID: "yale", Name: "Yale School of Medicine", State: "CT",
			Degree: schools.DegreeMD, Ownership: schools.OwnershipPrivate,
			Attrs: schools.Attrs{
				schools.AttrAvgGPA:       "3.92",
				schools.AttrMinMCATNotes: "NR",
			},
		},
		{
			ID: "kansas", Name: "University of Kansas School of Medicine", State: "KS",
			Degree: schools.DegreeMD, Ownership: schools.OwnershipPublic,
		},
	})
	require.NoError(t, err)
	return reg
}

func testResolver(t *testing.T, reg *schools.Registry) *resolve.Resolver {
	t.Helper()
	r, err := resolve.New(reg)
	require.NoError(t, err)
	return r
}

func TestMergeFillsOnlyAbsentAttributes(t *testing.T) {
	reg := testRegistry(t)
	records := []sources.Record{{
		Source: "msar",
		Name:   "Yale School of Medicine",
		State:  "CT",
		Attrs: schools.Attrs{
			schools.AttrAvgGPA:       "3.5",          // already populated
			schools.AttrAvgMCAT:      "519",          // absent, should land
			schools.AttrMinMCATNotes: "508 required", // curated NR blocks this
		},
	}}

	merged, report, err := Merge(context.Background(), reg, records, testResolver(t, reg))
	require.NoError(t, err)

	yale, ok := merged.Get("yale")
	require.True(t, ok)

	gpa, _ := yale.AvgGPA()
	assert.InDelta(t, 3.92, gpa, 1e-9, "existing value must survive")
	mcat, ok := yale.AvgMCAT()
	require.True(t, ok)
	assert.Equal(t, 519, mcat)
	notes, _ := yale.Attrs.Get(schools.AttrMinMCATNotes)
	assert.Equal(t, "NR", notes, "explicit not-reported marks are kept")

	sr := report.Schools["yale"]
	require.NotNil(t, sr)
	assert.Equal(t, resolve.MethodExact, sr.Method)
	assert.Equal(t, []schools.AttrKey{schools.AttrAvgMCAT}, sr.Added)
	assert.ElementsMatch(t, []schools.AttrKey{schools.AttrAvgGPA, schools.AttrMinMCATNotes}, sr.Skipped)
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	reg := testRegistry(t)
	records := []sources.Record{{
		Source: "msar",
		Name:   "University of Kansas",
		State:  "KS",
		Attrs:  schools.Attrs{schools.AttrAvgMCAT: "508"},
	}}

	_, _, err := Merge(context.Background(), reg, records, testResolver(t, reg))
	require.NoError(t, err)

	kansas, ok := reg.Get("kansas")
	require.True(t, ok)
	_, hasMCAT := kansas.AvgMCAT()
	assert.False(t, hasMCAT, "original registry must stay untouched")
}

func TestMergeIdempotent(t *testing.T) {
	reg := testRegistry(t)
	records := []sources.Record{{
		Source: "msar",
		Name:   "Yale School of Medicine",
		Attrs:  schools.Attrs{schools.AttrAvgMCAT: "519"},
	}}

	once, first, err := Merge(context.Background(), reg, records, testResolver(t, reg))
	require.NoError(t, err)
	assert.Equal(t, 1, first.Added())

	twice, second, err := Merge(context.Background(), once, records, testResolver(t, once))
	require.NoError(t, err)
	assert.Equal(t, 0, second.Added(), "second pass has nothing left to add")
	assert.Equal(t, once.List(), twice.List())
}

func TestMergeReportsUnmatched(t *testing.T) {
	reg := testRegistry(t)
	records := []sources.Record{
		{Source: "msar", Name: "Yale School of Medicine"},
		{Source: "msar", Name: "Unknown Institute of the Outer Rim", State: "ZZ"},
	}

	_, report, err := Merge(context.Background(), reg, records, testResolver(t, reg))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Records)
	assert.Equal(t, 1, report.Matched)
	require.Len(t, report.Unmatched, 1)
	assert.Equal(t, "Unknown Institute of the Outer Rim", report.Unmatched[0].Name)
}

func TestMergeLogsAnnotateSourceAndSchool(t *testing.T) {
	reg := testRegistry(t)
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	records := []sources.Record{
		{Source: "msar", Name: "Yale School of Medicine", Attrs: schools.Attrs{schools.AttrAvgMCAT: "519"}},
		{Source: "survey", Name: "Unknown Institute of the Outer Rim", State: "ZZ"},
	}

	_, _, err := Merge(ctx, reg, records, testResolver(t, reg))
	require.NoError(t, err)

	assert.True(t, tl.Contains(`"source":"msar"`))
	assert.True(t, tl.Contains(`"school_id":"yale"`))
	assert.True(t, tl.Contains(`"source":"survey"`), "unmatched records still log their source")
	assert.True(t, tl.Contains("Merge complete"))
}

func TestMergeEmptyFeed(t *testing.T) {
	reg := testRegistry(t)
	merged, report, err := Merge(context.Background(), reg, nil, testResolver(t, reg))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Records)
	assert.Equal(t, reg.List(), merged.List())
}
