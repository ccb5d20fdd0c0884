package gmm

import (
	"fmt"
	"math"
)

// ScalarGroundMotion is the (mean, sigma) lognormal ground motion
// distribution predicted by a model for one Imt and one rupture/site pair.
// Mean is the natural log of the median intensity; Sigma is the total
// standard deviation in natural-log units.
type ScalarGroundMotion interface {
	Mean() float64
	Sigma() float64
}

// DefaultScalarGroundMotion is the plain single-valued result.
type DefaultScalarGroundMotion struct {
	mean  float64
	sigma float64
}

// NewScalarGroundMotion wraps a (mean, sigma) pair.
func NewScalarGroundMotion(mean, sigma float64) DefaultScalarGroundMotion {
	return DefaultScalarGroundMotion{mean: mean, sigma: sigma}
}

func (sgm DefaultScalarGroundMotion) Mean() float64 { return sgm.mean }

func (sgm DefaultScalarGroundMotion) Sigma() float64 { return sgm.sigma }

func (sgm DefaultScalarGroundMotion) String() string {
	return fmt.Sprintf("[μ=%.6f, σ=%.6f]", sgm.mean, sgm.sigma)
}

// MultiScalarGroundMotion preserves the weighted mean and sigma branches of
// a logic-tree model rather than collapsing them. Hazard integrators that
// track epistemic uncertainty consume the branch arrays directly; Mean and
// Sigma expose the weighted aggregates for consumers that cannot. The mean
// and sigma branch counts are independent.
type MultiScalarGroundMotion struct {
	means     []float64
	meanWts   []float64
	sigmas    []float64
	sigmaWts  []float64
	meanTotal float64
	sigTotal  float64
}

// NewMultiScalarGroundMotion combines weighted candidate means and sigmas.
// The aggregate mean is the log of the weighted average of the branch
// medians, ln(Σ wᵢ·exp(μᵢ)); the aggregate sigma is the weighted arithmetic
// average Σ wᵢ·σᵢ. Each weight set must sum to 1; the supplied slices are
// retained and must not be mutated by the caller.
func NewMultiScalarGroundMotion(
	means, meanWts, sigmas, sigmaWts []float64) (MultiScalarGroundMotion, error) {

	if len(means) != len(meanWts) {
		return MultiScalarGroundMotion{}, fmt.Errorf(
			"mean branch mismatch: %d means, %d weights", len(means), len(meanWts))
	}
	if len(sigmas) != len(sigmaWts) {
		return MultiScalarGroundMotion{}, fmt.Errorf(
			"sigma branch mismatch: %d sigmas, %d weights", len(sigmas), len(sigmaWts))
	}
	if err := validateWeights(meanWts); err != nil {
		return MultiScalarGroundMotion{}, fmt.Errorf("mean weights: %w", err)
	}
	if err := validateWeights(sigmaWts); err != nil {
		return MultiScalarGroundMotion{}, fmt.Errorf("sigma weights: %w", err)
	}

	var linear float64
	for i, m := range means {
		linear += meanWts[i] * math.Exp(m)
	}
	var sigma float64
	for i, s := range sigmas {
		sigma += sigmaWts[i] * s
	}

	return MultiScalarGroundMotion{
		means:     means,
		meanWts:   meanWts,
		sigmas:    sigmas,
		sigmaWts:  sigmaWts,
		meanTotal: math.Log(linear),
		sigTotal:  sigma,
	}, nil
}

func (msgm MultiScalarGroundMotion) Mean() float64 { return msgm.meanTotal }

func (msgm MultiScalarGroundMotion) Sigma() float64 { return msgm.sigTotal }

// Means returns the candidate mean branches.
func (msgm MultiScalarGroundMotion) Means() []float64 { return msgm.means }

// MeanWeights returns the weights of the mean branches.
func (msgm MultiScalarGroundMotion) MeanWeights() []float64 { return msgm.meanWts }

// Sigmas returns the candidate sigma branches.
func (msgm MultiScalarGroundMotion) Sigmas() []float64 { return msgm.sigmas }

// SigmaWeights returns the weights of the sigma branches.
func (msgm MultiScalarGroundMotion) SigmaWeights() []float64 { return msgm.sigmaWts }
