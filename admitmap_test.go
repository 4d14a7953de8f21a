package admitmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admitmap/admitmap/pkg/classify"
	"github.com/admitmap/admitmap/pkg/logging"
	"github.com/admitmap/admitmap/pkg/resolve"
	"github.com/admitmap/admitmap/pkg/schools"
	"github.com/admitmap/admitmap/pkg/sources"
)

func TestNewDefaultsToEmbeddedCatalog(t *testing.T) {
	c, err := New(WithLogger(&logging.Nop))
	require.NoError(t, err)

	reg, err := c.Registry()
	require.NoError(t, err)
	assert.Greater(t, reg.Len(), 20)
}

func TestClientResolve(t *testing.T) {
	c, err := New(WithLogger(&logging.Nop))
	require.NoError(t, err)

	m := c.Resolve(sources.Record{Name: "Yale School of Medicine"})
	require.True(t, m.Matched())
	assert.Equal(t, schools.SchoolID("yale"), m.SchoolID)
	assert.Equal(t, resolve.MethodExact, m.Method)
}

func TestClientOverrides(t *testing.T) {
	c, err := New(
		WithLogger(&logging.Nop),
		WithOverrides(map[string]schools.SchoolID{"Harvard Med": "yale"}),
	)
	require.NoError(t, err)

	m := c.Resolve(sources.Record{Name: "Harvard Med"})
	require.True(t, m.Matched())
	assert.Equal(t, schools.SchoolID("yale"), m.SchoolID)
	assert.Equal(t, resolve.MethodOverride, m.Method)
}

func TestClientEnrichSwapsRegistry(t *testing.T) {
	c, err := New(WithLogger(&logging.Nop))
	require.NoError(t, err)

	before, err := c.Registry()
	require.NoError(t, err)
	vermont, ok := before.Get("vermont-larner")
	require.True(t, ok)
	_, hasURL := vermont.Attrs.Get(schools.AttrWebsiteURL)
	require.False(t, hasURL)

	report, err := c.Enrich(context.Background(), []sources.Record{{
		Source: "msar",
		Name:   "Larner College of Medicine at the University of Vermont",
		State:  "VT",
		Attrs:  schools.Attrs{schools.AttrWebsiteURL: "https://www.med.uvm.edu"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added())

	after, err := c.Registry()
	require.NoError(t, err)
	enriched, ok := after.Get("vermont-larner")
	require.True(t, ok)
	url, _ := enriched.Attrs.Get(schools.AttrWebsiteURL)
	assert.Equal(t, "https://www.med.uvm.edu", url)

	// The pre-enrichment snapshot the caller held is untouched.
	_, hasURL = vermont.Attrs.Get(schools.AttrWebsiteURL)
	assert.False(t, hasURL)
}

func TestClientClassify(t *testing.T) {
	c, err := New(WithLogger(&logging.Nop))
	require.NoError(t, err)

	rs, err := c.Classify(classify.Profile{GPA: 3.7, MCAT: 508, State: "CA"})
	require.NoError(t, err)

	reg, err := c.Registry()
	require.NoError(t, err)
	assert.Equal(t, reg.Len(), rs.Total())
	assert.NotEmpty(t, rs.Reach)
	assert.NotEmpty(t, rs.Target)
}

func TestClientClassifyInvalidProfile(t *testing.T) {
	c, err := New(WithLogger(&logging.Nop))
	require.NoError(t, err)

	_, err = c.Classify(classify.Profile{GPA: 5.0, MCAT: 512})
	assert.Error(t, err)
}

func TestWithCatalogFileRejectsEmptyPath(t *testing.T) {
	_, err := New(WithCatalogFile(""))
	assert.Error(t, err)
}
