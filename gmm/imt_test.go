package gmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImt_RoundTrip(t *testing.T) {
	for i := 0; i < numImts; i++ {
		imt := Imt(i)
		got, err := ParseImt(imt.String())
		require.NoError(t, err)
		assert.Equal(t, imt, got)
	}

	_, err := ParseImt("SA0P11")
	assert.Error(t, err)
}

func TestFromPeriod(t *testing.T) {
	got, err := FromPeriod(0.0)
	require.NoError(t, err)
	assert.Equal(t, PGA, got)

	got, err = FromPeriod(0.2)
	require.NoError(t, err)
	assert.Equal(t, SA0P2, got)

	_, err = FromPeriod(0.22)
	assert.Error(t, err)
}

func TestFromFrequency_SentinelsAndLooseMatches(t *testing.T) {
	tests := []struct {
		f    float64
		want Imt
	}{
		{99.0, PGA},
		{89.0, PGV},
		{0.33, SA3P0},
		{3.2, SA0P3},
		{3.33, SA0P3},
		{33.0, SA0P03},
		{1.0, SA1P0},
		{5.0, SA0P2},
		{20.0, SA0P05},
	}
	for _, tt := range tests {
		got, err := FromFrequency(tt.f)
		require.NoError(t, err, "f %g", tt.f)
		assert.Equal(t, tt.want, got, "f %g", tt.f)
	}

	_, err := FromFrequency(7.3)
	assert.Error(t, err)
}

func TestSAImts_FiltersAndSortsByPeriod(t *testing.T) {
	got := SAImts([]Imt{PGV, SA2P0, PGA, SA0P1, SA1P0})
	assert.Equal(t, []Imt{SA0P1, SA1P0, SA2P0}, got)
}

func TestIntersectImts(t *testing.T) {
	a := []Imt{PGA, SA0P2, SA1P0, SA2P0}
	b := []Imt{SA2P0, SA1P0, PGA}
	c := []Imt{PGA, SA1P0, SA5P0}

	assert.Equal(t, []Imt{PGA, SA1P0}, IntersectImts(a, b, c))
	assert.Equal(t, []Imt{PGA, SA0P2, SA1P0, SA2P0}, IntersectImts(a))
	assert.Nil(t, IntersectImts())

	// duplicate entries within one set do not fake membership in another
	assert.Empty(t, IntersectImts([]Imt{PGA, PGA}, []Imt{SA1P0}))
}
