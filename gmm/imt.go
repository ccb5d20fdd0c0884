package gmm

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Imt identifies an intensity measure type: peak ground motion measures or
// spectral acceleration at a fixed oscillator period. SA0P2 reads as spectral
// acceleration at 0.2 seconds.
type Imt int

// The closed set of intensity measure types supported by the engine. Ordinal
// order is ascending spectral period; PGA, PGV sort ahead of the SA set.
const (
	PGA Imt = iota
	PGV
	SA0P01
	SA0P02
	SA0P03
	SA0P05
	SA0P075
	SA0P1
	SA0P15
	SA0P2
	SA0P25
	SA0P3
	SA0P4
	SA0P5
	SA0P75
	SA1P0
	SA1P5
	SA2P0
	SA3P0
	SA4P0
	SA5P0
	SA7P5
	SA10P0

	numImts int = iota
)

var imtNames = [...]string{
	"PGA", "PGV",
	"SA0P01", "SA0P02", "SA0P03", "SA0P05", "SA0P075",
	"SA0P1", "SA0P15", "SA0P2", "SA0P25", "SA0P3", "SA0P4", "SA0P5",
	"SA0P75", "SA1P0", "SA1P5", "SA2P0", "SA3P0", "SA4P0", "SA5P0",
	"SA7P5", "SA10P0",
}

var imtPeriods = [...]float64{
	0.0, -1.0,
	0.01, 0.02, 0.03, 0.05, 0.075,
	0.1, 0.15, 0.2, 0.25, 0.3, 0.4, 0.5,
	0.75, 1.0, 1.5, 2.0, 3.0, 4.0, 5.0,
	7.5, 10.0,
}

func (imt Imt) String() string {
	if imt < 0 || int(imt) >= numImts {
		return fmt.Sprintf("Imt(%d)", int(imt))
	}
	return imtNames[imt]
}

// IsSA reports whether imt is a spectral acceleration measure.
func (imt Imt) IsSA() bool {
	return imt >= SA0P01 && int(imt) < numImts
}

// Period returns the oscillator period of a spectral acceleration Imt, 0 for
// PGA, and -1 for PGV (the sentinel used by legacy coefficient resources).
func (imt Imt) Period() float64 {
	return imtPeriods[imt]
}

// ParseImt resolves the string identifier used in coefficient resources.
// PGA and PGV rows are sentinels for the non-spectral measures.
func ParseImt(s string) (Imt, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range imtNames {
		if n == name {
			return Imt(i), nil
		}
	}
	return 0, fmt.Errorf("unknown Imt %q", s)
}

// FromPeriod returns the SA Imt whose period matches t within a small
// tolerance, PGA for t == 0, or an error when no supported Imt exists.
func FromPeriod(t float64) (Imt, error) {
	const tol = 1e-6
	for i := 0; i < numImts; i++ {
		imt := Imt(i)
		if imt == PGV {
			continue
		}
		if math.Abs(imt.Period()-t) < tol {
			return imt, nil
		}
	}
	return 0, fmt.Errorf("no Imt for period %g s", t)
}

// FromFrequency maps a frequency column header from a legacy Atkinson-style
// table to its Imt. Frequencies near 0.33, 3.3 and 33 Hz are identified
// loosely because source files encode them inconsistently; 99 and 89 Hz are
// the legacy sentinels for PGA and PGV.
func FromFrequency(f float64) (Imt, error) {
	switch {
	case f == 99.0:
		return PGA, nil
	case f == 89.0:
		return PGV, nil
	case f == 0.32 || f == 0.33:
		return SA3P0, nil
	case f == 3.2 || f == 3.33:
		return SA0P3, nil
	case f == 32.0 || f == 33.0 || f == 33.33:
		return SA0P03, nil
	}
	return FromPeriod(1.0 / f)
}

// SAImts returns the spectral acceleration members of imts, sorted by period.
func SAImts(imts []Imt) []Imt {
	var sa []Imt
	for _, imt := range imts {
		if imt.IsSA() {
			sa = append(sa, imt)
		}
	}
	sort.Slice(sa, func(i, j int) bool { return sa[i].Period() < sa[j].Period() })
	return sa
}

// sortedImts sorts in place and returns imts in ordinal order.
func sortedImts(imts []Imt) []Imt {
	sort.Slice(imts, func(i, j int) bool { return imts[i] < imts[j] })
	return imts
}

// IntersectImts returns the Imts common to every supplied set, sorted in
// ordinal order. Used when several models must be evaluated at a shared
// period set, e.g. for response spectra.
func IntersectImts(sets ...[]Imt) []Imt {
	if len(sets) == 0 {
		return nil
	}
	counts := make(map[Imt]int)
	for _, set := range sets {
		seen := make(map[Imt]bool)
		for _, imt := range set {
			if !seen[imt] {
				seen[imt] = true
				counts[imt]++
			}
		}
	}
	var out []Imt
	for imt, n := range counts {
		if n == len(sets) {
			out = append(out, imt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
