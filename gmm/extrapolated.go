package gmm

import (
	"fmt"
	"sort"
)

// ExtrapolatedGmm extends a model past its longest supported period by
// borrowing the period-dependence shape of a weighted reference ensemble: the
// result at the target period is the reference ensemble's value scaled by the
// ratio of the primary model to the reference ensemble at a common period
// both support. Ratios apply independently to mean and sigma.
type ExtrapolatedGmm struct {
	primary    GroundMotionModel
	refsCommon []weightedModel
	refsTarget []weightedModel
}

type weightedModel struct {
	model  GroundMotionModel
	weight float64
}

// NewExtrapolatedGmm resolves the primary instance of id at commonImt and
// the reference instances at both commonImt and targetImt. Reference weights
// must sum to one.
func NewExtrapolatedGmm(
	r *Registry, id Gmm, targetImt, commonImt Imt, refs map[Gmm]float64) (*ExtrapolatedGmm, error) {

	if !targetImt.IsSA() || !commonImt.IsSA() {
		return nil, fmt.Errorf("%w: extrapolation requires spectral Imts", ErrConstruction)
	}
	if targetImt.Period() <= commonImt.Period() {
		return nil, fmt.Errorf("%w: target %s not beyond common period %s",
			ErrConstruction, targetImt, commonImt)
	}

	refIds := make([]Gmm, 0, len(refs))
	weights := make([]float64, 0, len(refs))
	for refId := range refs {
		refIds = append(refIds, refId)
	}
	sort.Slice(refIds, func(i, j int) bool { return refIds[i] < refIds[j] })
	for _, refId := range refIds {
		weights = append(weights, refs[refId])
	}
	if err := validateWeights(weights); err != nil {
		return nil, fmt.Errorf("%w: reference weights: %v", ErrConstruction, err)
	}

	primary, err := r.Instance(id, commonImt)
	if err != nil {
		return nil, err
	}

	refsCommon := make([]weightedModel, len(refIds))
	refsTarget := make([]weightedModel, len(refIds))
	for i, refId := range refIds {
		common, err := r.Instance(refId, commonImt)
		if err != nil {
			return nil, err
		}
		target, err := r.Instance(refId, targetImt)
		if err != nil {
			return nil, err
		}
		refsCommon[i] = weightedModel{model: common, weight: weights[i]}
		refsTarget[i] = weightedModel{model: target, weight: weights[i]}
	}

	return &ExtrapolatedGmm{
		primary:    primary,
		refsCommon: refsCommon,
		refsTarget: refsTarget,
	}, nil
}

func (m *ExtrapolatedGmm) Calc(in Input) ScalarGroundMotion {
	var muRefCommon, sigRefCommon float64
	for _, ref := range m.refsCommon {
		sgm := ref.model.Calc(in)
		muRefCommon += ref.weight * sgm.Mean()
		sigRefCommon += ref.weight * sgm.Sigma()
	}

	var muRefTarget, sigRefTarget float64
	for _, ref := range m.refsTarget {
		sgm := ref.model.Calc(in)
		muRefTarget += ref.weight * sgm.Mean()
		sigRefTarget += ref.weight * sgm.Sigma()
	}

	sgm := m.primary.Calc(in)
	return NewScalarGroundMotion(
		muRefTarget*(sgm.Mean()/muRefCommon),
		sigRefTarget*(sgm.Sigma()/sigRefCommon))
}
