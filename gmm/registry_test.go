package gmm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_InstanceMemoized(t *testing.T) {
	r := testRegistry(t)

	a, err := r.Instance(Campbell03, PGA)
	require.NoError(t, err)
	b, err := r.Instance(Campbell03, PGA)
	require.NoError(t, err)
	assert.Same(t, a, b)

	// a different period is a different instance
	c, err := r.Instance(Campbell03, SA1P0)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

func TestRegistry_ConcurrentRequestsShareInstance(t *testing.T) {
	r := testRegistry(t)

	const n = 32
	out := make([]GroundMotionModel, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := r.Instance(NgaEastUsgs, SA1P0)
			assert.NoError(t, err)
			out[i] = m
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Same(t, out[0], out[i])
	}
}

func TestRegistry_UnsupportedPeriod(t *testing.T) {
	r := testRegistry(t)

	// Campbell03 has no 10 s coefficients
	_, err := r.Instance(Campbell03, SA10P0)
	assert.ErrorIs(t, err, ErrUnsupportedPeriod)
	assert.NotErrorIs(t, err, ErrConstruction)
}

func TestRegistry_InvalidIdentifier(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Instance(Gmm(-1), PGA)
	assert.ErrorIs(t, err, ErrConstruction)
	_, err = r.Instance(Gmm(numGmms), PGA)
	assert.ErrorIs(t, err, ErrConstruction)
}

func TestRegistry_EveryModelConstructsAtPGA(t *testing.T) {
	r := testRegistry(t)
	for _, id := range Gmms() {
		m, err := r.Instance(id, PGA)
		require.NoError(t, err, "model %s", id)
		sgm := m.Calc(DefaultInput())
		assert.False(t, sgm.Mean() > 10 || sgm.Mean() < -20, "mean out of range for %s", id)
		assert.Greater(t, sgm.Sigma(), 0.0, "sigma for %s", id)
	}
}

func TestRegistry_SupportedImtsIntersection(t *testing.T) {
	r := testRegistry(t)

	// single model: its own coverage
	campbell := r.SupportedImts(Campbell03)
	assert.Contains(t, campbell, PGA)
	assert.Contains(t, campbell, SA4P0)
	assert.NotContains(t, campbell, PGV)

	// intersection drops periods any member lacks
	both := r.SupportedImts(Campbell03, Frankel96)
	assert.Contains(t, both, PGA)
	assert.Contains(t, both, SA2P0)
	assert.NotContains(t, both, SA4P0) // Frankel96 stops at 2 s
}

func TestRegistry_InstancesForImts(t *testing.T) {
	r := testRegistry(t)
	imts := []Imt{PGA, SA0P2, SA1P0}
	out, err := r.InstancesForImts(Toro97Mw, imts)
	require.NoError(t, err)
	assert.Len(t, out, 3)
	for _, imt := range imts {
		assert.NotNil(t, out[imt])
	}
}

func TestRegistry_Constraints(t *testing.T) {
	r := testRegistry(t)

	ceus := r.Constraints(Campbell03)
	ngae := r.Constraints(NgaEastUsgs)
	assert.NotEqual(t, ceus, ngae)

	// constraints are informational: Calc accepts values outside them
	m, err := r.Instance(Campbell03, PGA)
	require.NoError(t, err)
	in := DefaultInput()
	in.Mw = 9.2 // above the declared 8.0 ceiling
	sgm := m.Calc(in)
	assert.False(t, sgm.Mean() != sgm.Mean(), "mean is NaN")
	assert.Greater(t, sgm.Sigma(), 0.0)
}

func TestParseGmm_KeysAndNames(t *testing.T) {
	for _, id := range Gmms() {
		got, err := ParseGmm(id.Key())
		require.NoError(t, err)
		assert.Equal(t, id, got)

		got, err = ParseGmm(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	_, err := ParseGmm("no-such-model")
	assert.Error(t, err)
}

func TestGroups_MembersRegistered(t *testing.T) {
	for _, g := range []Group{GroupCeus2008, GroupCeus2014, GroupNgaEast} {
		members := g.Gmms()
		assert.NotEmpty(t, members, "group %s", g)
		for _, id := range members {
			assert.True(t, id.valid(), "group %s member %d", g, int(id))
		}
	}
}
