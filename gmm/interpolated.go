package gmm

import "fmt"

// InterpolatedGmm fills a gap in a model's native period coverage by
// evaluating the instances at the bounding supported periods and linearly
// interpolating mean and sigma in period (not log period). At either bound
// the result equals that bound's instance exactly.
type InterpolatedGmm struct {
	lo, hi GroundMotionModel
	frac   float64
}

// NewInterpolatedGmm resolves the bounding instances of id for a spectral
// target between loImt and hiImt.
func NewInterpolatedGmm(r *Registry, id Gmm, target, loImt, hiImt Imt) (*InterpolatedGmm, error) {
	if !target.IsSA() || !loImt.IsSA() || !hiImt.IsSA() {
		return nil, fmt.Errorf("%w: interpolation requires spectral Imts", ErrConstruction)
	}
	tLo, tHi, t := loImt.Period(), hiImt.Period(), target.Period()
	if tLo >= tHi || t < tLo || t > tHi {
		return nil, fmt.Errorf("%w: target %s outside bounds [%s, %s]",
			ErrConstruction, target, loImt, hiImt)
	}
	lo, err := r.Instance(id, loImt)
	if err != nil {
		return nil, err
	}
	hi, err := r.Instance(id, hiImt)
	if err != nil {
		return nil, err
	}
	return &InterpolatedGmm{
		lo:   lo,
		hi:   hi,
		frac: (t - tLo) / (tHi - tLo),
	}, nil
}

func (m *InterpolatedGmm) Calc(in Input) ScalarGroundMotion {
	sLo := m.lo.Calc(in)
	sHi := m.hi.Calc(in)
	return NewScalarGroundMotion(
		sLo.Mean()+m.frac*(sHi.Mean()-sLo.Mean()),
		sLo.Sigma()+m.frac*(sHi.Sigma()-sLo.Sigma()))
}
