package gmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNgaSigmaBranch_ReferenceValues(t *testing.T) {
	c := testCatalog(t)
	s, err := newNgaEastSigma(c, PGA)
	require.NoError(t, err)

	// independently computed from the shipped coefficients at Mw 6.5, vs30 760
	assert.InDelta(t, 0.7287707184, s.lo.sigma(6.5, 760.0), 1e-9)
	assert.InDelta(t, 0.8474078121, s.mid.sigma(6.5, 760.0), 1e-9)
	assert.InDelta(t, 0.9829930620, s.hi.sigma(6.5, 760.0), 1e-9)
}

func TestNgaSigmaBranch_PhiS2STransition(t *testing.T) {
	c := testCatalog(t)
	s, err := newNgaEastSigma(c, PGA)
	require.NoError(t, err)
	b := s.mid

	assert.Equal(t, b.s1, b.phiS2S(800.0))
	assert.Equal(t, b.s1, b.phiS2S(1200.0))
	assert.Equal(t, b.s2, b.phiS2S(1500.0))
	assert.Equal(t, b.s2, b.phiS2S(2500.0))
	assert.InDelta(t, (b.s1+b.s2)/2.0, b.phiS2S(1350.0), 1e-12)
}

func TestNgaSigmaBranch_MagnitudeEndpoints(t *testing.T) {
	c := testCatalog(t)
	s, err := newNgaEastSigma(c, PGA)
	require.NoError(t, err)
	b := s.mid

	at := func(mw float64) float64 { return b.sigma(mw, 760.0) }

	// below 4.5 and above 6.5 the piecewise tau is flat
	assert.Equal(t, at(4.0), at(4.5))
	assert.InDelta(t, at(8.0), at(6.5), 1e-12)
}

func TestNgaSigmaTotal_AnchorsAndInterpolation(t *testing.T) {
	c := testCatalog(t)
	s, err := newNgaEastSigma(c, PGA)
	require.NoError(t, err)
	tm := s.total

	assert.Equal(t, math.Hypot(tm.tauM5, tm.phiM5), tm.sigma(5.0))
	assert.InDelta(t, math.Hypot(tm.tauM6, tm.phiM6), tm.sigma(6.0), 1e-12)
	assert.InDelta(t, math.Hypot(tm.tauM7, tm.phiM7), tm.sigma(7.0), 1e-12)

	// flat beyond the anchors
	assert.Equal(t, tm.sigma(5.0), tm.sigma(4.0))
	assert.Equal(t, tm.sigma(7.0), tm.sigma(8.2))

	// interpolated components at Mw 6.5
	tau := tm.tauM6 + (tm.tauM7-tm.tauM6)*0.5
	phi := tm.phiM6 + (tm.phiM7-tm.phiM6)*0.5
	assert.InDelta(t, math.Hypot(tau, phi), tm.sigma(6.5), 1e-12)
}

func TestNgaEastUsgs_BranchStructure(t *testing.T) {
	r := testRegistry(t)
	in := DefaultInput()

	branching, err := r.Instance(NgaEastUsgs, PGA)
	require.NoError(t, err)
	msgm, ok := branching.Calc(in).(MultiScalarGroundMotion)
	require.True(t, ok, "expected branch-preserving result")

	assert.Len(t, msgm.Means(), ngaEastModelCount)
	assert.Len(t, msgm.Sigmas(), 3)
	assert.Equal(t, ngaSigmaWeights, msgm.SigmaWeights())
	assert.NoError(t, validateWeights(msgm.MeanWeights()))

	total, err := r.Instance(NgaEastUsgsTotal, PGA)
	require.NoError(t, err)
	tsgm, ok := total.Calc(in).(MultiScalarGroundMotion)
	require.True(t, ok)
	assert.Len(t, tsgm.Sigmas(), 1)
	assert.Equal(t, []float64{1.0}, tsgm.SigmaWeights())

	// the 13 median branches are shared between the two sigma variants
	assert.Equal(t, msgm.Means(), tsgm.Means())
}

func TestNgaEastUsgsTotal_ReferenceScenario(t *testing.T) {
	r := testRegistry(t)
	m, err := r.Instance(NgaEastUsgsTotal, PGA)
	require.NoError(t, err)

	sgm := m.Calc(DefaultInput())
	assert.InDelta(t, -2.0588738940, sgm.Mean(), 1e-8)
	assert.InDelta(t, 0.9547131768, sgm.Sigma(), 1e-8)
}

func TestNgaEastSeed_ReferenceScenario(t *testing.T) {
	r := testRegistry(t)
	m, err := r.Instance(NgaEastSeedBa04, PGA)
	require.NoError(t, err)

	sgm := m.Calc(DefaultInput())
	assert.InDelta(t, -2.1275527176, sgm.Mean(), 1e-8)
	assert.InDelta(t, 0.9547131768, sgm.Sigma(), 1e-8)
}

func TestBasinTerm_SedimentResponse(t *testing.T) {
	c := testCatalog(t)
	b, err := newBasinTerm(c, SA1P0)
	require.NoError(t, err)
	require.True(t, b.apply)

	// shallow sediment is a negative adjustment, deep is positive
	assert.Less(t, b.sedimentTerm(0.3), 0.0)
	assert.Equal(t, 0.0, b.sedimentTerm(1.0))
	assert.Equal(t, 0.0, b.sedimentTerm(2.0))
	assert.Greater(t, b.sedimentTerm(6.0), 0.0)

	// the deep response saturates
	assert.InDelta(t, b.c16*b.k3*math.Exp(-0.75), b.sedimentTerm(60.0), 1e-6)
}

func TestBasinTerm_Delta(t *testing.T) {
	c := testCatalog(t)
	b, err := newBasinTerm(c, SA1P0)
	require.NoError(t, err)

	// unknown depth: no adjustment
	assert.Equal(t, 0.0, b.delta(math.NaN(), 760.0))

	// vs30 760 implies zRef ~ 0.6 km, inside the flat branch of the
	// sediment term
	zRef := math.Exp(7.089 - 1.144*math.Log(760.0))
	require.Greater(t, zRef, 0.3)
	require.Less(t, zRef, 3.0)

	// deeper than reference: full positive delta
	deep := b.delta(6.0, 760.0)
	assert.InDelta(t, b.sedimentTerm(6.0)-b.sedimentTerm(zRef), deep, 1e-12)
	assert.Greater(t, deep, 0.0)

	// shallower than reference: half the negative delta
	shallow := b.delta(0.3, 760.0)
	assert.InDelta(t, (b.sedimentTerm(0.3)-b.sedimentTerm(zRef))/2.0, shallow, 1e-12)
	assert.Less(t, shallow, 0.0)
}

func TestBasinTerm_ShortPeriodsTakeNoAdjustment(t *testing.T) {
	c := testCatalog(t)
	b, err := newBasinTerm(c, SA0P2)
	require.NoError(t, err)
	assert.False(t, b.apply)
	assert.Equal(t, 0.0, b.delta(6.0, 760.0))
}

func TestNgaEastUsgsBasin_AdjustsLongPeriodsOnly(t *testing.T) {
	r := testRegistry(t)

	plain, err := r.Instance(NgaEastUsgs, SA1P0)
	require.NoError(t, err)
	basin, err := r.Instance(NgaEastUsgsBasin, SA1P0)
	require.NoError(t, err)

	// without a basin depth the variants agree
	in := DefaultInput()
	assert.InDelta(t, plain.Calc(in).Mean(), basin.Calc(in).Mean(), 1e-12)

	// a deep basin raises the long-period median
	in.Z2p5 = 6.0
	assert.Greater(t, basin.Calc(in).Mean(), plain.Calc(in).Mean())
	assert.InDelta(t, plain.Calc(in).Mean(), plain.Calc(DefaultInput()).Mean(), 1e-12)

	// at short periods the basin variant is a no-op
	plainShort, err := r.Instance(NgaEastUsgs, SA0P2)
	require.NoError(t, err)
	basinShort, err := r.Instance(NgaEastUsgsBasin, SA0P2)
	require.NoError(t, err)
	assert.InDelta(t, plainShort.Calc(in).Mean(), basinShort.Calc(in).Mean(), 1e-12)
}

func TestNgaEastModels_PgvSupported(t *testing.T) {
	r := testRegistry(t)
	m, err := r.Instance(NgaEastUsgs, PGV)
	require.NoError(t, err)
	sgm := m.Calc(DefaultInput())
	assert.Greater(t, sgm.Sigma(), 0.0)
}
