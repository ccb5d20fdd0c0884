package gmm

import "math"

// toro1997 is the Toro et al. (1997) model for stable continental regions
// with the 2002 finite-fault distance correction. The mb flavor keeps the
// source magnitude in the ground motion terms; only the fictitious-depth
// correction converts to Mw, taking the geometric mean of the two
// conversions.
type toro1997 struct {
	imt  Imt
	isMw bool
	t1, t1h, t2, t3, t4, t5, t6, th, sigma float64
}

func newToro1997(cat *Catalog, imt Imt, isMw bool) (*toro1997, error) {
	cc := cat.toro97Mb
	if isMw {
		cc = cat.toro97Mw
	}
	v, err := coeffValues(cc, imt,
		"t1", "t1h", "t2", "t3", "t4", "t5", "t6", "th", "tsigma")
	if err != nil {
		return nil, err
	}
	return &toro1997{
		imt: imt, isMw: isMw,
		t1: v[0], t1h: v[1], t2: v[2], t3: v[3], t4: v[4],
		t5: v[5], t6: v[6], th: v[7], sigma: v[8],
	}, nil
}

func (m *toro1997) Calc(in Input) ScalarGroundMotion {
	return NewScalarGroundMotion(m.mean(in), m.sigma)
}

func (m *toro1997) mean(in Input) float64 {
	mag := in.Mw
	site := ceusSiteClass(in.Vs30)

	// Finite-fault correction to the fictitious depth (bending point).
	// With mb input the correction magnitude converts to Mw.
	var mCorr float64
	if m.isMw {
		mCorr = math.Exp(-1.25 + 0.227*mag)
	} else {
		cor1 := math.Exp(-1.25 + 0.227*MbToMwJohnston(mag))
		cor2 := math.Exp(-1.25 + 0.227*MbToMwAtkinsonBoore(mag))
		mCorr = math.Sqrt(cor1 * cor2)
	}

	dist := math.Sqrt(in.RJB*in.RJB + m.th*m.th*mCorr*mCorr)

	gnd := m.t1
	if site == HardRock {
		gnd = m.t1h
	}
	gnd += m.t2*(mag-6.0) + m.t3*(mag-6.0)*(mag-6.0)
	gnd += -m.t4*math.Log(dist) - m.t6*dist

	if factor := math.Log(dist / 100.0); factor > 0 {
		gnd -= (m.t5 - m.t4) * factor
	}

	return ceusMeanClip(m.imt, gnd)
}
