package gmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcResponseSpectrum_CoversNativePeriods(t *testing.T) {
	r := testRegistry(t)

	rs, err := CalcResponseSpectrum(r, Frankel96, DefaultInput())
	require.NoError(t, err)

	// the spectral subset of the model's coverage, in ascending period
	assert.Equal(t, []Imt{SA0P1, SA0P2, SA0P3, SA0P5, SA1P0, SA2P0}, rs.Imts)
	assert.Len(t, rs.Means, len(rs.Imts))
	assert.Len(t, rs.Sigmas, len(rs.Imts))

	// entries match direct per-period evaluation
	for i, imt := range rs.Imts {
		m, err := r.Instance(Frankel96, imt)
		require.NoError(t, err)
		sgm := m.Calc(DefaultInput())
		assert.Equal(t, sgm.Mean(), rs.Means[i], "%s", imt)
		assert.Equal(t, sgm.Sigma(), rs.Sigmas[i], "%s", imt)
	}
}

func TestCalcResponseSpectra_SharedAxis(t *testing.T) {
	r := testRegistry(t)
	ids := []Gmm{Campbell03, Frankel96, Toro97Mw}

	spectra, err := CalcResponseSpectra(r, ids, DefaultInput())
	require.NoError(t, err)
	require.Len(t, spectra, len(ids))

	// all spectra share one axis: the period intersection of the models
	axis := spectra[ids[0]].Imts
	assert.NotEmpty(t, axis)
	for _, id := range ids {
		assert.Equal(t, axis, spectra[id].Imts, "model %s", id)
	}

	// Campbell03-only periods are absent from the shared axis
	assert.NotContains(t, axis, SA4P0)
	assert.Contains(t, axis, SA1P0)
}

func TestCalcResponseSpectra_BranchModelsCollapse(t *testing.T) {
	r := testRegistry(t)

	spectra, err := CalcResponseSpectra(r, []Gmm{NgaEastUsgs, NgaEastSeedSP15}, DefaultInput())
	require.NoError(t, err)

	// logic-tree models contribute their aggregate mean to the spectrum
	rs := spectra[NgaEastUsgs]
	m, err := r.Instance(NgaEastUsgs, rs.Imts[0])
	require.NoError(t, err)
	assert.Equal(t, m.Calc(DefaultInput()).Mean(), rs.Means[0])
}
