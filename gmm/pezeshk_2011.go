package gmm

import "math"

// pezeshk2011 is the Pezeshk, Zandieh & Tavakoli (2011) hybrid empirical
// model for eastern North America: table-based medians, functional sigma.
type pezeshk2011 struct {
	imt           Imt
	c12, c13, c14 float64
	bcfac         float64
	table         GroundMotionTable
}

const pezeshkSigmaFac = -6.95e-3

func newPezeshk2011(cat *Catalog, imt Imt) (*pezeshk2011, error) {
	v, err := coeffValues(cat.pezeshk11c, imt, "c12", "c13", "c14", "bcfac")
	if err != nil {
		return nil, err
	}
	table, ok := cat.pezeshk11[imt]
	if !ok {
		return nil, unsupportedImt("pezeshk11 tables", imt)
	}
	return &pezeshk2011{
		imt: imt,
		c12: v[0], c13: v[1], c14: v[2], bcfac: v[3],
		table: table,
	}, nil
}

func (m *pezeshk2011) Calc(in Input) ScalarGroundMotion {
	r := math.Max(in.RRup, 1.0)
	mu := atkinsonTableValue(m.table, m.imt, in.Mw, r, in.Vs30, m.bcfac)
	return NewScalarGroundMotion(ceusMeanClip(m.imt, mu), m.stdDev(in.Mw))
}

func (m *pezeshk2011) stdDev(mw float64) float64 {
	var sigma float64
	if mw <= 7.0 {
		sigma = m.c12*mw + m.c13
	} else {
		sigma = pezeshkSigmaFac*mw + m.c14
	}
	return sigma * base10ToE
}
