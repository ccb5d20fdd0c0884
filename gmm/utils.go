package gmm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// base10ToE converts log10 ground motion to natural log. Referenced as SFAC
// in the legacy NSHMP fortran these tables descend from.
var base10ToE = math.Log(10.0)

// lnGCmToM converts cm/s² table ordinates to g in natural-log space.
var lnGCmToM = math.Log(980.0)

// FaultStyle is the NSHMP interpretation of rupture mechanism.
type FaultStyle int

const (
	StrikeSlip FaultStyle = iota
	Normal
	Reverse
	UnknownStyle
)

// RakeToFaultStyle converts rake to FaultStyle with divisions on 45°
// diagonals.
func RakeToFaultStyle(rake float64) FaultStyle {
	switch {
	case math.IsNaN(rake):
		return UnknownStyle
	case rake >= 45 && rake <= 135:
		return Reverse
	case rake >= -135 && rake <= -45:
		return Normal
	default:
		return StrikeSlip
	}
}

// MagConverter adapts a source catalog magnitude to the Mw a model expects.
type MagConverter func(m float64) float64

// MbToMwJohnston converts mb to Mw per Johnston (1996).
func MbToMwJohnston(m float64) float64 {
	return 1.14 + 0.24*m + 0.0933*m*m
}

// MbToMwAtkinsonBoore converts mb to Mw per Atkinson & Boore (1995).
func MbToMwAtkinsonBoore(m float64) float64 {
	return 2.715 - 0.277*m + 0.127*m*m
}

// SiteClass partitions CEUS site conditions.
type SiteClass int

const (
	SoftRock SiteClass = iota // NEHRP BC boundary, vs30 ≈ 760 m/s
	HardRock                  // NEHRP A, vs30 ≈ 2000 m/s
)

// ceusSiteClass maps vs30 to the two site conditions the CEUS models were
// developed for. The legacy codes only ever supplied 760 or 2000 m/s; any
// vs30 at or above 1500 m/s selects hard rock.
func ceusSiteClass(vs30 float64) SiteClass {
	if vs30 >= 1500.0 {
		return HardRock
	}
	return SoftRock
}

// ceusMeanClip applies the period-dependent CEUS ground motion clip used to
// bound the upper tail of the exceedance curve: PGA at ln(1.5 g), spectral
// periods in (0.02 s, 0.5 s) at ln(3.0 g).
func ceusMeanClip(imt Imt, mu float64) float64 {
	// ln(1.5) = 0.405, ln(3.0) = 1.099
	if imt == PGA {
		return math.Min(0.405, mu)
	}
	if t := imt.Period(); t > 0.02 && t < 0.5 {
		return math.Min(mu, 1.099)
	}
	return mu
}

// atkinsonTableValue converts a raw Atkinson-style table lookup to natural
// log g. Raw ordinates are log10 cm/s² at hard rock; at soft rock sites the
// short-period values scale with distance and other periods shift by the
// model's BC conversion factor.
func atkinsonTableValue(table GroundMotionTable, imt Imt, m, r, vs30, bcfac float64) float64 {
	mu := table.Get(r, m)
	if ceusSiteClass(vs30) == SoftRock {
		if imt == PGA || imt == SA0P02 {
			mu += -0.3 + 0.15*math.Log10(r)
		} else {
			mu += bcfac
		}
	}
	mu *= base10ToE
	if imt != PGV {
		mu -= lnGCmToM
	}
	return mu
}

// coeffValues extracts named coefficients for one Imt in order, failing on
// the first missing name or unsupported period.
func coeffValues(cc *CoefficientContainer, imt Imt, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := cc.Get(imt, name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// normalize scales weights to sum to one.
func normalize(weights []float64) []float64 {
	sum := floats.Sum(weights)
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / sum
	}
	return out
}
