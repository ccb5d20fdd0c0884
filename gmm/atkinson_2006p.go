package gmm

import "math"

// atkinsonBoore2006p is the modified Atkinson & Boore (2006) CEUS model used
// in the 2014 national hazard model, commonly AB06'. Medians come from table
// lookups with a magnitude-dependent stress parameter baked into the grids.
type atkinsonBoore2006p struct {
	imt   Imt
	bcfac float64
	table GroundMotionTable
}

// 0.3 log10 units, the fixed aleatory variability of the prime models.
var atkinsonSigma = 0.3 * base10ToE

func newAtkinsonBoore2006p(cat *Catalog, imt Imt) (*atkinsonBoore2006p, error) {
	bcfac, err := cat.ab06p.Get(imt, "bcfac")
	if err != nil {
		return nil, err
	}
	table, ok := cat.atkinson06[imt]
	if !ok {
		return nil, unsupportedImt("atkinson06 tables", imt)
	}
	return &atkinsonBoore2006p{imt: imt, bcfac: bcfac, table: table}, nil
}

func (m *atkinsonBoore2006p) Calc(in Input) ScalarGroundMotion {
	r := math.Max(in.RRup, 1.8)
	mu := atkinsonTableValue(m.table, m.imt, in.Mw, r, in.Vs30, m.bcfac)
	return NewScalarGroundMotion(ceusMeanClip(m.imt, mu), atkinsonSigma)
}

// atkinson2008p is the modified Atkinson (2008) referenced-empirical CEUS
// model used in the 2014 national hazard model, commonly A08'. Table-based,
// indexed on rJB.
type atkinson2008p struct {
	imt   Imt
	bcfac float64
	table GroundMotionTable
}

func newAtkinson2008p(cat *Catalog, imt Imt) (*atkinson2008p, error) {
	bcfac, err := cat.ab08p.Get(imt, "bcfac")
	if err != nil {
		return nil, err
	}
	table, ok := cat.atkinson08[imt]
	if !ok {
		return nil, unsupportedImt("atkinson08 tables", imt)
	}
	return &atkinson2008p{imt: imt, bcfac: bcfac, table: table}, nil
}

func (m *atkinson2008p) Calc(in Input) ScalarGroundMotion {
	r := math.Max(in.RJB, 0.11)
	mu := atkinsonTableValue(m.table, m.imt, in.Mw, r, in.Vs30, m.bcfac)
	return NewScalarGroundMotion(ceusMeanClip(m.imt, mu), atkinsonSigma)
}
