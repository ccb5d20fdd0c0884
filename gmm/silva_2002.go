package gmm

import "math"

// silva2002 is the Silva et al. (2002) hard-rock model for stable continental
// regions, with BC-boundary coefficients for soft-rock sites. The mb flavors
// wrap this type with a magnitude converter.
type silva2002 struct {
	imt Imt
	c1, c1hr, c2, c4, c6, c7, c10, sigma float64
}

func newSilva2002(cat *Catalog, imt Imt) (*silva2002, error) {
	v, err := coeffValues(cat.silva02, imt,
		"c1", "c1hr", "c2", "c4", "c6", "c7", "c10", "sigma")
	if err != nil {
		return nil, err
	}
	return &silva2002{
		imt: imt,
		c1:  v[0], c1hr: v[1], c2: v[2], c4: v[3],
		c6: v[4], c7: v[5], c10: v[6], sigma: v[7],
	}, nil
}

func (m *silva2002) Calc(in Input) ScalarGroundMotion {
	mu := m.mean(in.Mw, in.RJB, ceusSiteClass(in.Vs30))
	return NewScalarGroundMotion(mu, m.sigma)
}

func (m *silva2002) mean(mw, rJB float64, site SiteClass) float64 {
	c1 := m.c1
	if site == HardRock {
		c1 = m.c1hr
	}
	gnd0 := c1 + m.c2*mw + m.c10*(mw-6.0)*(mw-6.0)
	fac := m.c6 + m.c7*mw
	gnd := gnd0 + fac*math.Log(rJB+math.Exp(m.c4))

	return ceusMeanClip(m.imt, gnd)
}
