package gmm

import (
	"math"
	"sort"
)

// GroundMotionTable is an immutable grid of precomputed log ground-motion
// ordinates over (distance, magnitude) with bilinear interpolation. Values
// outside the grid are clamped to the nearest edge bin; implementations may
// additionally scale beyond the maximum tabulated distance. Whether the
// distance argument is rRup or rJB is a property of the wrapped dataset.
type GroundMotionTable interface {

	// Get returns the bilinearly interpolated log ground motion at the
	// supplied distance (km) and magnitude.
	Get(r, m float64) float64

	// Position locates (r, m) on the grid. Callers evaluating several
	// tables that share axis keys compute the position once and reuse it
	// via GetPosition, skipping the repeated index search.
	Position(r, m float64) Position

	// GetPosition interpolates at a previously computed Position.
	GetPosition(p Position) float64
}

// Position holds grid indices and interpolation fractions for one (r, m)
// pair. Valid only for tables sharing the axes it was computed from.
type Position struct {
	ir, im       int
	rFrac, mFrac float64
}

// clampingTable is the base table: linear axes, edge clamping.
// data is indexed [distance][magnitude].
type clampingTable struct {
	data  [][]float64
	rKeys []float64
	mKeys []float64
}

func newClampingTable(data [][]float64, rKeys, mKeys []float64) *clampingTable {
	return &clampingTable{data: data, rKeys: rKeys, mKeys: mKeys}
}

func (t *clampingTable) Position(r, m float64) Position {
	ir := dataIndex(t.rKeys, r)
	im := dataIndex(t.mKeys, m)
	return Position{
		ir:    ir,
		im:    im,
		rFrac: fraction(t.rKeys[ir], t.rKeys[ir+1], r),
		mFrac: fraction(t.mKeys[im], t.mKeys[im+1], m),
	}
}

func (t *clampingTable) GetPosition(p Position) float64 {
	return interpolate(
		t.data[p.ir][p.im],
		t.data[p.ir][p.im+1],
		t.data[p.ir+1][p.im],
		t.data[p.ir+1][p.im+1],
		p.mFrac,
		p.rFrac)
}

func (t *clampingTable) Get(r, m float64) float64 {
	return t.GetPosition(t.Position(r, m))
}

// logDistanceTable stores its distance axis as log10 values; the caller's
// raw distance is transformed before indexing. Used by tables whose source
// files tabulate against log10(r).
type logDistanceTable struct {
	clampingTable
}

func newLogDistanceTable(data [][]float64, rKeys, mKeys []float64) *logDistanceTable {
	return &logDistanceTable{clampingTable{data: data, rKeys: rKeys, mKeys: mKeys}}
}

func (t *logDistanceTable) Position(r, m float64) Position {
	return t.clampingTable.Position(math.Log10(r), m)
}

func (t *logDistanceTable) Get(r, m float64) float64 {
	return t.GetPosition(t.Position(r, m))
}

// logDistanceScalingTable additionally decays ground motion as 1/r beyond
// the maximum tabulated distance instead of clamping. Legacy Atkinson-style
// tables require this.
type logDistanceScalingTable struct {
	logDistanceTable
	rMax float64 // log10 of the maximum tabulated distance
}

func newLogDistanceScalingTable(data [][]float64, rKeys, mKeys []float64) *logDistanceScalingTable {
	return &logDistanceScalingTable{
		logDistanceTable: logDistanceTable{clampingTable{data: data, rKeys: rKeys, mKeys: mKeys}},
		rMax:             rKeys[len(rKeys)-1],
	}
}

func (t *logDistanceScalingTable) Get(r, m float64) float64 {
	rLog := math.Log10(r)
	v := t.clampingTable.Get(rLog, m)
	if rLog <= t.rMax {
		return v
	}
	return v - (rLog - t.rMax)
}

/*
 * Basic bilinear interpolation
 *
 *    c11---i1----c12
 *     |     |     |
 *     |-----o-----| < f2
 *     |     |     |
 *    c21---i2----c22
 *           ^
 *          f1
 */
func interpolate(c11, c12, c21, c22, f1, f2 float64) float64 {
	i1 := c11 + f1*(c12-c11)
	i2 := c21 + f1*(c22-c21)
	return i1 + f2*(i2-i1)
}

// fraction clamps values outside [lo, hi] to the edges.
func fraction(lo, hi, value float64) float64 {
	switch {
	case value < lo:
		return 0.0
	case value > hi:
		return 1.0
	default:
		return (value - lo) / (hi - lo)
	}
}

// dataIndex is a clamping binary search: it always returns an index in
// [0, len(keys)-2], so keys[i] and keys[i+1] form a valid 4-corner window.
func dataIndex(keys []float64, value float64) int {
	i := sort.SearchFloat64s(keys, value)
	if i == len(keys) || keys[i] > value {
		i--
	}
	if i < 0 {
		return 0
	}
	if i > len(keys)-2 {
		return len(keys) - 2
	}
	return i
}
