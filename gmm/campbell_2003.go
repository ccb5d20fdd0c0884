package gmm

import "math"

// campbell2003 is the Campbell (2003) hybrid empirical model for stable
// continental regions, as rendered in the 2008 national hazard model. Means
// are clamped per ceusMeanClip. The mb flavors wrap this type with a
// magnitude converter.
type campbell2003 struct {
	imt Imt
	c1, c1h, c2, c3, c4, c5,
	c6, c7, c8, c9, c10,
	c11, c12, c13 float64
}

const (
	campbellLog70  = 4.2484952
	campbellLog130 = 4.8675345
)

func newCampbell2003(cat *Catalog, imt Imt) (*campbell2003, error) {
	v, err := coeffValues(cat.campbell03, imt,
		"c1", "c1h", "c2", "c3", "c4", "c5", "c6",
		"c7", "c8", "c9", "c10", "c11", "c12", "c13")
	if err != nil {
		return nil, err
	}
	return &campbell2003{
		imt: imt,
		c1:  v[0], c1h: v[1], c2: v[2], c3: v[3], c4: v[4], c5: v[5],
		c6: v[6], c7: v[7], c8: v[8], c9: v[9], c10: v[10],
		c11: v[11], c12: v[12], c13: v[13],
	}, nil
}

func (m *campbell2003) Calc(in Input) ScalarGroundMotion {
	mu := m.mean(in.Mw, in.RRup, ceusSiteClass(in.Vs30))
	return NewScalarGroundMotion(mu, m.stdDev(in.Mw))
}

func (m *campbell2003) mean(mw, rRup float64, site SiteClass) float64 {
	gnd0 := m.c1
	if site == HardRock {
		gnd0 = m.c1h
	}
	gndm := gnd0 + m.c2*mw + m.c3*(8.5-mw)*(8.5-mw)
	cfac := math.Pow(m.c5*math.Exp(m.c6*mw), 2)

	arg := math.Sqrt(rRup*rRup + cfac)
	fac := 0.0
	if rRup > 70.0 {
		fac = m.c7 * (math.Log(rRup) - campbellLog70)
	}
	if rRup > 130.0 {
		fac += m.c8 * (math.Log(rRup) - campbellLog130)
	}
	gnd := gndm + m.c4*math.Log(arg) + fac + (m.c9+m.c10*mw)*rRup

	return ceusMeanClip(m.imt, gnd)
}

func (m *campbell2003) stdDev(mw float64) float64 {
	if mw < 7.16 {
		return m.c11 + m.c12*mw
	}
	return m.c13
}
