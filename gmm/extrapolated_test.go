package gmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExtrapolatedGmm_Validation(t *testing.T) {
	r := testRegistry(t)
	refs := map[Gmm]float64{Campbell03: 1.0}

	// non-spectral periods
	_, err := NewExtrapolatedGmm(r, Frankel96, PGA, SA2P0, refs)
	assert.ErrorIs(t, err, ErrConstruction)

	// target must lie beyond the common period
	_, err = NewExtrapolatedGmm(r, Frankel96, SA1P0, SA2P0, refs)
	assert.ErrorIs(t, err, ErrConstruction)
	_, err = NewExtrapolatedGmm(r, Frankel96, SA2P0, SA2P0, refs)
	assert.ErrorIs(t, err, ErrConstruction)

	// reference weights must sum to one
	_, err = NewExtrapolatedGmm(r, Frankel96, SA3P0, SA2P0,
		map[Gmm]float64{Campbell03: 0.5, Silva02: 0.3})
	assert.ErrorIs(t, err, ErrConstruction)

	// unsupported reference period propagates
	_, err = NewExtrapolatedGmm(r, Frankel96, SA3P0, SA2P0,
		map[Gmm]float64{Frankel96: 1.0})
	assert.ErrorIs(t, err, ErrUnsupportedPeriod)
}

func TestExtrapolatedGmm_SelfReferenceIdentity(t *testing.T) {
	r := testRegistry(t)
	in := DefaultInput()

	// GIVEN the primary model as its own reference, the scaled result equals
	// the model's native value at the target period
	m, err := NewExtrapolatedGmm(r, Campbell03, SA3P0, SA2P0,
		map[Gmm]float64{Campbell03: 1.0})
	require.NoError(t, err)

	native, err := r.Instance(Campbell03, SA3P0)
	require.NoError(t, err)

	got := m.Calc(in)
	want := native.Calc(in)
	assert.InDelta(t, want.Mean(), got.Mean(), 1e-12)
	assert.InDelta(t, want.Sigma(), got.Sigma(), 1e-12)
}

func TestExtrapolatedGmm_ScalesReferenceShape(t *testing.T) {
	r := testRegistry(t)
	in := DefaultInput()

	// Frankel96 ends at 2 s; extend it to 3 s with a two-model reference
	refs := map[Gmm]float64{Campbell03: 0.6, Silva02: 0.4}
	m, err := NewExtrapolatedGmm(r, Frankel96, SA3P0, SA2P0, refs)
	require.NoError(t, err)

	var muC, muT, sigC, sigT float64
	for id, w := range refs {
		common, err := r.Instance(id, SA2P0)
		require.NoError(t, err)
		target, err := r.Instance(id, SA3P0)
		require.NoError(t, err)
		muC += w * common.Calc(in).Mean()
		sigC += w * common.Calc(in).Sigma()
		muT += w * target.Calc(in).Mean()
		sigT += w * target.Calc(in).Sigma()
	}
	primary, err := r.Instance(Frankel96, SA2P0)
	require.NoError(t, err)

	got := m.Calc(in)
	assert.InDelta(t, muT*(primary.Calc(in).Mean()/muC), got.Mean(), 1e-12)
	assert.InDelta(t, sigT*(primary.Calc(in).Sigma()/sigC), got.Sigma(), 1e-12)
}
