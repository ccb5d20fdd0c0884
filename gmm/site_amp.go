package gmm

import "math"

// SiteAmp is the NGA-East nonlinear site amplification model: a stateless
// function of reference-rock PGA and site vs30 producing an additive
// natural-log adjustment and its epistemic spread. The linear term combines a
// vs30 scaling with a rock-reference (760 m/s) correction blended between
// impedance and gradient site profiles; the nonlinear term reduces
// amplification on soft sites as rock motion grows. Applicable to
// 200 <= vs30 <= 2000 m/s; lower values clamp to 200, higher values take no
// adjustment.
type SiteAmp struct {
	imt Imt

	c, v1, v2, vf        float64
	sigVC, sigL, sigU    float64
	f760i, f760g         float64
	f760iSig, f760gSig   float64
	f3, f4, f5, vc, sigC float64
}

const (
	siteVRef   = 760.0
	siteVRefNl = 3000.0
	siteVL     = 200.0
	siteVU     = 2000.0

	// Impedance/gradient blend: logistic in ln(vs30), centered on the
	// midpoint velocity with the transition width in ln units.
	siteBlendV = 600.0
	siteBlendW = 0.2
)

// Epistemic branch weights for the (+sigma, 0, -sigma) site amp branches,
// combined in linear ground motion space.
var siteAmpWeights = [3]float64{0.185, 0.63, 0.185}

// NewSiteAmp builds the amplification model for one Imt from the catalog's
// site coefficient resource.
func NewSiteAmp(cat *Catalog, imt Imt) (*SiteAmp, error) {
	v, err := coeffValues(cat.siteAmp, imt,
		"c", "V1", "V2", "Vf", "sigma_vc", "sigma_l", "sigma_u",
		"f760i", "f760g", "f760i_sigma", "f760g_sigma",
		"f3", "f4", "f5", "Vc", "sigma_c")
	if err != nil {
		return nil, err
	}
	return &SiteAmp{
		imt: imt,
		c:   v[0], v1: v[1], v2: v[2], vf: v[3],
		sigVC: v[4], sigL: v[5], sigU: v[6],
		f760i: v[7], f760g: v[8], f760iSig: v[9], f760gSig: v[10],
		f3: v[11], f4: v[12], f5: v[13], vc: v[14], sigC: v[15],
	}, nil
}

// SiteAmpValue is an additive ln-space site adjustment with its epistemic
// standard deviation.
type SiteAmpValue struct {
	Amp   float64
	Sigma float64
}

// Calc computes the total site adjustment for a reference-rock PGA (ln g)
// and site vs30.
func (s *SiteAmp) Calc(pgaRock, vs30 float64) SiteAmpValue {
	if vs30 > siteVU {
		return SiteAmpValue{}
	}
	if vs30 < siteVL {
		vs30 = siteVL
	}

	// Linear response: vs30 scaling, log-linear between anchors with the
	// slope halving above v2.
	var fv float64
	switch {
	case vs30 <= s.v1:
		fv = s.c * math.Log(s.v1/siteVRef)
	case vs30 <= s.v2:
		fv = s.c * math.Log(vs30/siteVRef)
	default:
		fv = s.c*math.Log(s.v2/siteVRef) + s.c/2.0*math.Log(vs30/s.v2)
	}

	var fvSig float64
	switch {
	case vs30 < s.vf:
		sigT := s.sigL - s.sigVC
		vT := (vs30 - siteVL) / (s.vf - siteVL)
		fvSig = s.sigL - 2.0*sigT*vT + sigT*vT*vT
	case vs30 <= s.v2:
		fvSig = s.sigVC
	default:
		vT := (vs30 - s.v2) / (siteVU - s.v2)
		fvSig = s.sigVC + (s.sigU-s.sigVC)*vT*vT
	}

	// Rock reference correction: impedance profiles dominate at high vs30,
	// gradient profiles at low vs30.
	wImp := 1.0 / (1.0 + math.Exp(-(math.Log(vs30)-math.Log(siteBlendV))/siteBlendW))
	f760 := wImp*s.f760i + (1.0-wImp)*s.f760g
	f760Sig := math.Sqrt(wImp*s.f760iSig*s.f760iSig + (1.0-wImp)*s.f760gSig*s.f760gSig)

	fLin := fv + f760
	sigLin := math.Sqrt(fvSig*fvSig + f760Sig*f760Sig)

	// Nonlinear response, active below the crossover velocity.
	var fNonlin, sigNonlin float64
	if vs30 < s.vc {
		f2 := s.f4 * (math.Exp(s.f5*(math.Min(vs30, siteVRefNl)-360.0)) -
			math.Exp(s.f5*(siteVRefNl-360.0)))
		fT := math.Log((math.Exp(pgaRock) + s.f3) / s.f3)
		fNonlin = f2 * fT

		var sigF2 float64
		if vs30 < 300.0 {
			sigF2 = s.sigC
		} else if vs30 < 1000.0 {
			sigF2 = s.sigC - s.sigC/math.Log(1000.0/300.0)*math.Log(vs30/300.0)
		}
		sigNonlin = sigF2 * fT
	}

	return SiteAmpValue{
		Amp:   fLin + fNonlin,
		Sigma: math.Sqrt(sigLin*sigLin + sigNonlin*sigNonlin),
	}
}

// Apply adjusts a rock mean by the site amplification, collapsing the three
// epistemic branches (+sigma, 0, -sigma) with fixed weights in linear space.
func (v SiteAmpValue) Apply(mu float64) float64 {
	muAmp := mu + v.Amp
	median := siteAmpWeights[0]*math.Exp(muAmp+v.Sigma) +
		siteAmpWeights[1]*math.Exp(muAmp) +
		siteAmpWeights[2]*math.Exp(muAmp-v.Sigma)
	return math.Log(median)
}
