package gmm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// weightTolerance bounds the allowed deviation of a weight set from 1.0.
const weightTolerance = 1e-8

// validateWeights checks that weights is non-empty, strictly positive, and
// sums to one within weightTolerance.
func validateWeights(weights []float64) error {
	if len(weights) == 0 {
		return fmt.Errorf("empty weight set")
	}
	for i, w := range weights {
		if w <= 0.0 || w > 1.0 {
			return fmt.Errorf("weight[%d] = %g out of (0, 1]", i, w)
		}
	}
	if sum := floats.Sum(weights); math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("weights sum to %.12f, want 1", sum)
	}
	return nil
}

// LogAverageEnsemble evaluates a fixed set of weighted models and averages
// their results in natural-log space: the ensemble mean is the weighted
// arithmetic average of the branch ln means, equivalent to the weighted
// geometric mean of the medians. Sigmas average arithmetically. This is the
// convention hazard logic trees conventionally use for model epistemic
// weights.
type LogAverageEnsemble struct {
	models  []GroundMotionModel
	weights []float64
}

// NewLogAverageEnsemble validates the weight set against the model set.
func NewLogAverageEnsemble(models []GroundMotionModel, weights []float64) (*LogAverageEnsemble, error) {
	if len(models) != len(weights) {
		return nil, fmt.Errorf("%w: %d models, %d weights", ErrConstruction, len(models), len(weights))
	}
	if err := validateWeights(weights); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConstruction, err)
	}
	return &LogAverageEnsemble{models: models, weights: weights}, nil
}

func (e *LogAverageEnsemble) Calc(in Input) ScalarGroundMotion {
	var mean, sigma float64
	for i, model := range e.models {
		sgm := model.Calc(in)
		mean += e.weights[i] * sgm.Mean()
		sigma += e.weights[i] * sgm.Sigma()
	}
	return NewScalarGroundMotion(mean, sigma)
}

// LinearAverageEnsemble averages branch medians in linear space and re-logs:
// mean = ln(Σ wᵢ·exp(μᵢ)). For any spread of branch means this sits above the
// log-space average. Sigmas average arithmetically, as in LogAverageEnsemble.
type LinearAverageEnsemble struct {
	models  []GroundMotionModel
	weights []float64
}

// NewLinearAverageEnsemble validates the weight set against the model set.
func NewLinearAverageEnsemble(models []GroundMotionModel, weights []float64) (*LinearAverageEnsemble, error) {
	if len(models) != len(weights) {
		return nil, fmt.Errorf("%w: %d models, %d weights", ErrConstruction, len(models), len(weights))
	}
	if err := validateWeights(weights); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConstruction, err)
	}
	return &LinearAverageEnsemble{models: models, weights: weights}, nil
}

func (e *LinearAverageEnsemble) Calc(in Input) ScalarGroundMotion {
	var linear, sigma float64
	for i, model := range e.models {
		sgm := model.Calc(in)
		linear += e.weights[i] * math.Exp(sgm.Mean())
		sigma += e.weights[i] * sgm.Sigma()
	}
	return NewScalarGroundMotion(math.Log(linear), sigma)
}

// MultiBranchEnsemble evaluates every weighted branch and preserves the
// per-branch means and sigmas in a MultiScalarGroundMotion instead of
// collapsing them, for consumers that integrate over epistemic branches
// themselves.
type MultiBranchEnsemble struct {
	models  []GroundMotionModel
	weights []float64
}

// NewMultiBranchEnsemble validates the weight set against the model set.
func NewMultiBranchEnsemble(models []GroundMotionModel, weights []float64) (*MultiBranchEnsemble, error) {
	if len(models) != len(weights) {
		return nil, fmt.Errorf("%w: %d models, %d weights", ErrConstruction, len(models), len(weights))
	}
	if err := validateWeights(weights); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConstruction, err)
	}
	return &MultiBranchEnsemble{models: models, weights: weights}, nil
}

func (e *MultiBranchEnsemble) Calc(in Input) ScalarGroundMotion {
	means := make([]float64, len(e.models))
	sigmas := make([]float64, len(e.models))
	for i, model := range e.models {
		sgm := model.Calc(in)
		means[i] = sgm.Mean()
		sigmas[i] = sgm.Sigma()
	}
	msgm, err := NewMultiScalarGroundMotion(means, e.weights, sigmas, e.weights)
	if err != nil {
		// weights were validated at construction; branch counts match by
		// construction
		panic(err)
	}
	return msgm
}
