package schools

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `schools:
  - id: yale
    name: Yale School of Medicine
    state: CT
    degree: MD
    ownership: private
    attrs:
      avg_gpa: "3.92"
      avg_mcat: "519"
      tuition: "68000"
  - id: kansas
    name: University of Kansas School of Medicine
    state: KS
    degree: MD
    ownership: public
`

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"schools.yaml": {Data: []byte(testCatalog)},
	}

	reg, err := Load(fsys, "schools.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	yale, ok := reg.Get("yale")
	require.True(t, ok)
	gpa, ok := yale.AvgGPA()
	require.True(t, ok)
	assert.InDelta(t, 3.92, gpa, 1e-9)

	// Unrecognized keys are dropped at load time.
	_, present := yale.Attrs.Get("tuition")
	assert.False(t, present)

	kansas, ok := reg.Get("kansas")
	require.True(t, ok)
	assert.True(t, kansas.Public())
	_, ok = kansas.AvgGPA()
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "schools.yaml")
	assert.Error(t, err)
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("schools: [not: valid"), "bad.yaml")
	assert.Error(t, err)
}

func TestParseDuplicateIdentityFails(t *testing.T) {
	_, err := Parse([]byte(`schools:
  - {id: a, name: Yale School of Medicine, state: CT, degree: MD, ownership: private}
  - {id: b, name: yale, state: CT, degree: MD, ownership: private}
`), "dup.yaml")
	assert.Error(t, err)
}
