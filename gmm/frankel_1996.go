package gmm

// frankel1996 is the Frankel et al. (1996) table-based model for the central
// and eastern US. Medians come from precomputed log10 grids, one table family
// per site class; sigma is a per-period coefficient, also in log10 units. The
// mb flavors wrap this type with a magnitude converter.
type frankel1996 struct {
	imt      Imt
	softRock GroundMotionTable
	hardRock GroundMotionTable
	bsigma   float64
}

func newFrankel1996(cat *Catalog, imt Imt) (*frankel1996, error) {
	bsigma, err := cat.frankel96.Get(imt, "bsigma")
	if err != nil {
		return nil, err
	}
	soft, ok := cat.frankelSoftRock[imt]
	if !ok {
		return nil, unsupportedImt("frankel96 soft rock tables", imt)
	}
	hard, ok := cat.frankelHardRock[imt]
	if !ok {
		return nil, unsupportedImt("frankel96 hard rock tables", imt)
	}
	return &frankel1996{imt: imt, softRock: soft, hardRock: hard, bsigma: bsigma}, nil
}

func (m *frankel1996) Calc(in Input) ScalarGroundMotion {
	table := m.softRock
	if ceusSiteClass(in.Vs30) == HardRock {
		table = m.hardRock
	}
	mu := table.Get(in.RRup, in.Mw) * base10ToE
	sigma := m.bsigma * base10ToE
	return NewScalarGroundMotion(ceusMeanClip(m.imt, mu), sigma)
}
