package gmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	tblRKeys = []float64{0.0, 1.0, 2.0} // log10 distance
	tblMKeys = []float64{5.0, 6.0, 7.0}
	tblData  = [][]float64{
		{-1.0, -0.5, 0.0},
		{-2.0, -1.5, -1.0},
		{-3.0, -2.5, -2.0},
	}
)

func TestDataIndex_ClampsToValidWindow(t *testing.T) {
	keys := []float64{1.0, 2.0, 3.0, 4.0}

	tests := []struct {
		value float64
		want  int
	}{
		{0.5, 0},  // below range
		{1.0, 0},  // first node
		{2.5, 1},  // interior
		{3.0, 2},  // node, exact
		{4.0, 2},  // last node clamps to last window
		{99.0, 2}, // above range
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dataIndex(keys, tt.value), "value %g", tt.value)
	}
}

func TestFraction_ClampsOutsideRange(t *testing.T) {
	assert.Equal(t, 0.0, fraction(1.0, 2.0, 0.5))
	assert.Equal(t, 0.0, fraction(1.0, 2.0, 1.0))
	assert.Equal(t, 0.5, fraction(1.0, 2.0, 1.5))
	assert.Equal(t, 1.0, fraction(1.0, 2.0, 2.0))
	assert.Equal(t, 1.0, fraction(1.0, 2.0, 3.0))
}

func TestClampingTable_NodeExactAndBilinear(t *testing.T) {
	tbl := newClampingTable(tblData, tblRKeys, tblMKeys)

	// GIVEN queries at grid nodes THEN values are exact
	for i, r := range tblRKeys {
		for j, m := range tblMKeys {
			assert.Equal(t, tblData[i][j], tbl.Get(r, m), "node (%g, %g)", r, m)
		}
	}

	// midpoint of a cell averages the four corners
	got := tbl.Get(0.5, 5.5)
	assert.InDelta(t, (-1.0-0.5-2.0-1.5)/4.0, got, 1e-12)

	// outside the grid clamps to the nearest edge
	assert.Equal(t, tblData[0][0], tbl.Get(-10.0, 0.0))
	assert.Equal(t, tblData[2][2], tbl.Get(10.0, 10.0))
}

func TestLogDistanceTable_TransformsDistance(t *testing.T) {
	tbl := newLogDistanceTable(tblData, tblRKeys, tblMKeys)

	// distance 10 km lands on the log10 = 1 row
	assert.Equal(t, tblData[1][1], tbl.Get(10.0, 6.0))
	// geometric midpoint between 1 and 10 km is halfway in log space
	assert.InDelta(t, -1.5, tbl.Get(math.Sqrt(10.0), 6.0), 1e-12)
}

func TestLogDistanceScalingTable_DecaysBeyondMaxDistance(t *testing.T) {
	tbl := newLogDistanceScalingTable(tblData, tblRKeys, tblMKeys)

	edge := tbl.Get(100.0, 6.0) // log10 = 2, the last tabulated distance
	assert.Equal(t, tblData[2][1], edge)

	// one decade past the edge loses one log10 unit (1/r decay)
	assert.InDelta(t, edge-1.0, tbl.Get(1000.0, 6.0), 1e-12)

	// inside the grid no scaling applies
	assert.Equal(t, tblData[1][1], tbl.Get(10.0, 6.0))
}

func TestGroundMotionTable_PositionReuse(t *testing.T) {
	a := newLogDistanceTable(tblData, tblRKeys, tblMKeys)
	shifted := [][]float64{
		{-1.5, -1.0, -0.5},
		{-2.5, -2.0, -1.5},
		{-3.5, -3.0, -2.5},
	}
	b := newLogDistanceTable(shifted, tblRKeys, tblMKeys)

	// GIVEN two tables sharing axes, a Position computed on one interpolates
	// the other identically to a direct lookup
	p := a.Position(17.0, 6.3)
	assert.Equal(t, b.Get(17.0, 6.3), b.GetPosition(p))
	assert.InDelta(t, a.GetPosition(p)-0.5, b.GetPosition(p), 1e-12)
}
