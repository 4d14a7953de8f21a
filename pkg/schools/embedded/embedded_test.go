package embedded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admitmap/admitmap/pkg/schools"
)

func TestRegistry(t *testing.T) {
	reg, err := Registry()
	require.NoError(t, err)
	assert.Greater(t, reg.Len(), 20)

	// Spot-check one seed entry.
	yale, ok := reg.Get("yale")
	require.True(t, ok)
	assert.Equal(t, schools.State("CT"), yale.State)
	assert.Equal(t, schools.DegreeMD, yale.Degree)
	mcat, ok := yale.AvgMCAT()
	require.True(t, ok)
	assert.Equal(t, 519, mcat)
}

func TestSeedIdentityInvariants(t *testing.T) {
	reg, err := Registry()
	require.NoError(t, err)

	for _, s := range reg.List() {
		assert.NoError(t, s.Validate(), "seed school %s", s.ID)
	}
}
