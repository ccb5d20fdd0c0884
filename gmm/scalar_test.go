package gmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMultiScalarGroundMotion_Aggregates(t *testing.T) {
	means := []float64{-1.0, -2.0, -3.0}
	meanWts := []float64{0.2, 0.5, 0.3}
	sigmas := []float64{0.6, 0.8}
	sigmaWts := []float64{0.25, 0.75}

	msgm, err := NewMultiScalarGroundMotion(means, meanWts, sigmas, sigmaWts)
	require.NoError(t, err)

	// aggregate mean is the log of the weighted average of medians
	wantMean := math.Log(0.2*math.Exp(-1.0) + 0.5*math.Exp(-2.0) + 0.3*math.Exp(-3.0))
	assert.InDelta(t, wantMean, msgm.Mean(), 1e-12)

	// aggregate sigma is the weighted arithmetic average
	assert.InDelta(t, 0.25*0.6+0.75*0.8, msgm.Sigma(), 1e-12)

	// branch arrays are preserved as supplied
	assert.Equal(t, means, msgm.Means())
	assert.Equal(t, meanWts, msgm.MeanWeights())
	assert.Equal(t, sigmas, msgm.Sigmas())
	assert.Equal(t, sigmaWts, msgm.SigmaWeights())
}

func TestNewMultiScalarGroundMotion_SingleBranchIdentity(t *testing.T) {
	msgm, err := NewMultiScalarGroundMotion(
		[]float64{-1.7}, []float64{1.0}, []float64{0.65}, []float64{1.0})
	require.NoError(t, err)
	assert.InDelta(t, -1.7, msgm.Mean(), 1e-12)
	assert.Equal(t, 0.65, msgm.Sigma())
}

func TestNewMultiScalarGroundMotion_Validation(t *testing.T) {
	tests := []struct {
		name             string
		means, meanWts   []float64
		sigmas, sigmaWts []float64
	}{
		{"mean count mismatch",
			[]float64{-1, -2}, []float64{1.0}, []float64{0.6}, []float64{1.0}},
		{"sigma count mismatch",
			[]float64{-1}, []float64{1.0}, []float64{0.6, 0.7}, []float64{1.0}},
		{"mean weights do not sum to one",
			[]float64{-1, -2}, []float64{0.5, 0.4}, []float64{0.6}, []float64{1.0}},
		{"sigma weight out of range",
			[]float64{-1}, []float64{1.0}, []float64{0.6, 0.7}, []float64{1.5, -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMultiScalarGroundMotion(tt.means, tt.meanWts, tt.sigmas, tt.sigmaWts)
			assert.Error(t, err)
		})
	}
}
