package gmm

import "math"

// The NGA-East USGS model family: a logic tree of 13 component median models
// with period-dependent weights, evaluated by table lookup at hard-rock
// reference conditions (vs30 3000 m/s) and adjusted to the site by SiteAmp.
// Sigma comes from either the total ergodic model or the 3-branch logic tree;
// results are branch-preserving MultiScalarGroundMotions. Seed models wrap a
// single median table with the total sigma model.

var ngaSigmaWeights = []float64{0.185, 0.63, 0.185}

// ngaSigmaBranch holds one epistemic branch of the sigma logic tree: the
// magnitude-dependent tau and phi models plus the vs30-dependent
// site-to-site term.
type ngaSigmaBranch struct {
	a, b                   float64
	tau1, tau2, tau3, tau4 float64
	s1, s2                 float64
}

func loadNgaSigmaBranch(cc *CoefficientContainer, imt Imt) (ngaSigmaBranch, error) {
	v, err := coeffValues(cc, imt, "a", "b", "tau1", "tau2", "tau3", "tau4", "s1", "s2")
	if err != nil {
		return ngaSigmaBranch{}, err
	}
	return ngaSigmaBranch{
		a: v[0], b: v[1],
		tau1: v[2], tau2: v[3], tau3: v[4], tau4: v[5],
		s1: v[6], s2: v[7],
	}, nil
}

// sigma combines the branch's tau, phi and site-to-site components by root
// sum of squares. The piecewise magnitude breakpoints are carried from the
// source model's global tau (eq. 10-6) and phi (eq. 11-9) forms.
func (b ngaSigmaBranch) sigma(mw, vs30 float64) float64 {
	tau := b.tau4
	switch {
	case mw <= 4.5:
		tau = b.tau1
	case mw <= 5.0:
		tau = b.tau1 + (b.tau2-b.tau1)*(mw-4.5)/0.5
	case mw <= 5.5:
		tau = b.tau2 + (b.tau3-b.tau2)*(mw-5.5)/0.5
	case mw <= 6.5:
		tau = b.tau3 + (b.tau4-b.tau3)*(mw-5.5)
	}

	phi := b.b
	if mw <= 5.0 {
		phi = b.a
	} else if mw <= 6.5 {
		phi = b.a + (mw-5.0)*(b.b-b.a)/1.5
	}

	s2s := b.phiS2S(vs30)
	return math.Sqrt(tau*tau + phi*phi + s2s*s2s)
}

// phiS2S transitions from the soft-site to the hard-site value between 1200
// and 1500 m/s.
func (b ngaSigmaBranch) phiS2S(vs30 float64) float64 {
	switch {
	case vs30 <= 1200.0:
		return b.s1
	case vs30 >= 1500.0:
		return b.s2
	default:
		return b.s1 + (b.s2-b.s1)*(vs30-1200.0)/300.0
	}
}

// ngaSigmaTotalModel is the total ergodic sigma alternative: tau and phi
// anchored at M5, M6 and M7 with linear interpolation between.
type ngaSigmaTotalModel struct {
	tauM5, phiM5, tauM6, phiM6, tauM7, phiM7 float64
}

func loadNgaSigmaTotal(cc *CoefficientContainer, imt Imt) (ngaSigmaTotalModel, error) {
	v, err := coeffValues(cc, imt,
		"tau_M5", "phi_M5", "tau_M6", "phi_M6", "tau_M7", "phi_M7")
	if err != nil {
		return ngaSigmaTotalModel{}, err
	}
	return ngaSigmaTotalModel{
		tauM5: v[0], phiM5: v[1],
		tauM6: v[2], phiM6: v[3],
		tauM7: v[4], phiM7: v[5],
	}, nil
}

func (t ngaSigmaTotalModel) sigma(mw float64) float64 {
	var tau, phi float64
	switch {
	case mw <= 5.0:
		tau, phi = t.tauM5, t.phiM5
	case mw <= 6.0:
		tau = interpolateY(5.0, t.tauM5, 6.0, t.tauM6, mw)
		phi = interpolateY(5.0, t.phiM5, 6.0, t.phiM6, mw)
	case mw <= 7.0:
		tau = interpolateY(6.0, t.tauM6, 7.0, t.tauM7, mw)
		phi = interpolateY(6.0, t.phiM6, 7.0, t.phiM7, mw)
	default:
		tau, phi = t.tauM7, t.phiM7
	}
	return math.Hypot(tau, phi)
}

func interpolateY(x1, y1, x2, y2, x float64) float64 {
	return y1 + (y2-y1)*(x-x1)/(x2-x1)
}

// ngaEastSigma bundles the three sigma branches and the total model for one
// Imt.
type ngaEastSigma struct {
	lo, mid, hi ngaSigmaBranch
	total       ngaSigmaTotalModel
}

func newNgaEastSigma(cat *Catalog, imt Imt) (*ngaEastSigma, error) {
	var s ngaEastSigma
	var err error
	if s.lo, err = loadNgaSigmaBranch(cat.ngaSigmaLo, imt); err != nil {
		return nil, err
	}
	if s.mid, err = loadNgaSigmaBranch(cat.ngaSigmaMid, imt); err != nil {
		return nil, err
	}
	if s.hi, err = loadNgaSigmaBranch(cat.ngaSigmaHi, imt); err != nil {
		return nil, err
	}
	if s.total, err = loadNgaSigmaTotal(cat.ngaSigmaTotal, imt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *ngaEastSigma) branchSigmas(mw, vs30 float64) []float64 {
	return []float64{
		s.lo.sigma(mw, vs30),
		s.mid.sigma(mw, vs30),
		s.hi.sigma(mw, vs30),
	}
}

// basinTerm is the deep-basin adjustment for long-period NGA-East variants.
// The sediment response follows the Campbell & Bozorgnia (2014) basin term;
// the adjustment is the term at the site's z2p5 relative to the term at the
// vs30-implied reference depth. Sites shallower than the reference take half
// the (negative) adjustment, averaging the adjusted and unadjusted medians.
type basinTerm struct {
	apply        bool // long periods only, 0.75 s and up
	c14, c16, k3 float64
}

func newBasinTerm(cat *Catalog, imt Imt) (*basinTerm, error) {
	v, err := coeffValues(cat.basin, imt, "c14", "c16", "k3")
	if err != nil {
		return nil, err
	}
	return &basinTerm{
		apply: imt.IsSA() && imt >= SA0P75,
		c14:   v[0], c16: v[1], k3: v[2],
	}, nil
}

func (b *basinTerm) delta(z2p5, vs30 float64) float64 {
	if !b.apply || math.IsNaN(z2p5) {
		return 0.0
	}
	zRef := math.Exp(7.089 - 1.144*math.Log(vs30))
	ref := b.sedimentTerm(zRef)
	site := b.sedimentTerm(z2p5)
	if site < ref {
		return (site - ref) / 2.0
	}
	return site - ref
}

func (b *basinTerm) sedimentTerm(z2p5 float64) float64 {
	if z2p5 <= 1.0 {
		return b.c14 * (z2p5 - 1.0)
	}
	if z2p5 > 3.0 {
		return b.c16 * b.k3 * math.Exp(-0.75) * (1.0 - math.Exp(-0.25*(z2p5-3.0)))
	}
	return 0.0
}

// ngaEastUsgs is the 13-branch component model group.
type ngaEastUsgs struct {
	imt       Imt
	tables    []GroundMotionTable
	pgaTables []GroundMotionTable
	weights   []float64
	sigma     *ngaEastSigma
	siteAmp   *SiteAmp
	branching bool
	basin     *basinTerm
}

func newNgaEastUsgs(cat *Catalog, imt Imt, branching, basin bool) (*ngaEastUsgs, error) {
	sigma, err := newNgaEastSigma(cat, imt)
	if err != nil {
		return nil, err
	}
	amp, err := NewSiteAmp(cat, imt)
	if err != nil {
		return nil, err
	}
	tables, ok := cat.ngaEast[imt]
	if !ok {
		return nil, unsupportedImt("nga-east tables", imt)
	}
	pgaTables, ok := cat.ngaEast[PGA]
	if !ok {
		return nil, unsupportedImt("nga-east tables", PGA)
	}
	weights, ok := cat.ngaEastWeights[imt]
	if !ok {
		return nil, unsupportedImt("nga-east weights", imt)
	}
	m := &ngaEastUsgs{
		imt:       imt,
		tables:    tables,
		pgaTables: pgaTables,
		weights:   weights,
		sigma:     sigma,
		siteAmp:   amp,
		branching: branching,
	}
	if basin {
		if m.basin, err = newBasinTerm(cat, imt); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *ngaEastUsgs) Calc(in Input) ScalarGroundMotion {
	// Component tables share axis keys, so the position search runs once.
	p := m.tables[0].Position(in.RRup, in.Mw)
	mus := make([]float64, len(m.tables))
	for i := range m.tables {
		mu := m.tables[i].GetPosition(p)
		pgaRock := m.pgaTables[i].GetPosition(p)
		fSite := m.siteAmp.Calc(pgaRock, in.Vs30)
		mu = fSite.Apply(mu)
		if m.basin != nil {
			mu += m.basin.delta(in.Z2p5, in.Vs30)
		}
		mus[i] = mu
	}

	var sigmas, sigmaWts []float64
	if m.branching {
		sigmas = m.sigma.branchSigmas(in.Mw, in.Vs30)
		sigmaWts = ngaSigmaWeights
	} else {
		sigmas = []float64{m.sigma.total.sigma(in.Mw)}
		sigmaWts = []float64{1.0}
	}

	msgm, err := NewMultiScalarGroundMotion(mus, m.weights, sigmas, sigmaWts)
	if err != nil {
		// weights are normalized at catalog load
		panic(err)
	}
	return msgm
}

// ngaEastSeed wraps a single seed median table with the total sigma model
// and the shared site amplification.
type ngaEastSeed struct {
	imt      Imt
	table    GroundMotionTable
	pgaTable GroundMotionTable
	sigma    *ngaEastSigma
	siteAmp  *SiteAmp
}

func newNgaEastSeed(cat *Catalog, id string, imt Imt) (*ngaEastSeed, error) {
	sigma, err := newNgaEastSigma(cat, imt)
	if err != nil {
		return nil, err
	}
	amp, err := NewSiteAmp(cat, imt)
	if err != nil {
		return nil, err
	}
	seed, ok := cat.ngaSeeds[id]
	if !ok {
		return nil, unsupportedImt("nga-east seed "+id, imt)
	}
	table, ok := seed[imt]
	if !ok {
		return nil, unsupportedImt("nga-east seed "+id, imt)
	}
	pgaTable, ok := seed[PGA]
	if !ok {
		return nil, unsupportedImt("nga-east seed "+id, PGA)
	}
	return &ngaEastSeed{
		imt: imt, table: table, pgaTable: pgaTable,
		sigma: sigma, siteAmp: amp,
	}, nil
}

func (m *ngaEastSeed) Calc(in Input) ScalarGroundMotion {
	p := m.table.Position(in.RRup, in.Mw)
	pgaRock := m.pgaTable.GetPosition(p)
	fSite := m.siteAmp.Calc(pgaRock, in.Vs30)
	mu := fSite.Apply(m.table.GetPosition(p))
	return NewScalarGroundMotion(mu, m.sigma.total.sigma(in.Mw))
}
