package layers

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBatchNorm1d_Standardizes(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	x := mat.NewDense(64, 4, nil)
	for i := 0; i < 64; i++ {
		for j := 0; j < 4; j++ {
			x.Set(i, j, rng.NormFloat64()*float64(j+1)+float64(j))
		}
	}

	bn := NewBatchNorm1d(4)
	out, err := bn.Forward(x)
	require.NoError(t, err)

	o := out.(*mat.Dense)
	for j := 0; j < 4; j++ {
		mean, variance := 0.0, 0.0
		for i := 0; i < 64; i++ {
			mean += o.At(i, j)
		}
		mean /= 64
		for i := 0; i < 64; i++ {
			d := o.At(i, j) - mean
			variance += d * d
		}
		variance /= 64
		assert.InDelta(t, 0.0, mean, 1e-9, "feature %d mean", j)
		assert.InDelta(t, 1.0, variance, 1e-3, "feature %d variance", j)
	}
}

func TestBatchNorm1d_Affine(t *testing.T) {
	bn := NewBatchNorm1d(1)
	bn.Gamma.Set(0, 0, 2)
	bn.Beta.Set(0, 0, 3)

	out, err := bn.Forward(mat.NewDense(2, 1, []float64{-1, 1}))
	require.NoError(t, err)

	// Standardized values are ±1, so the affine output is 3 ∓ 2.
	assert.InDelta(t, 1.0, out.At(0, 0), 1e-4)
	assert.InDelta(t, 5.0, out.At(1, 0), 1e-4)
}

func TestBatchNorm1d_ShapeMismatch(t *testing.T) {
	bn := NewBatchNorm1d(3)
	_, err := bn.Forward(mat.NewDense(2, 5, nil))
	require.Error(t, err)
}
