package layers

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// BatchNorm1d normalizes each feature over the batch dimension and
// applies a learnable affine transform.
type BatchNorm1d struct {
	Gamma *mat.Dense // 1 x features
	Beta  *mat.Dense // 1 x features
	Eps   float64
}

// NewBatchNorm1d initializes Gamma to ones and Beta to zeros.
func NewBatchNorm1d(features int) *BatchNorm1d {
	gamma := mat.NewDense(1, features, nil)
	for j := 0; j < features; j++ {
		gamma.Set(0, j, 1)
	}
	return &BatchNorm1d{
		Gamma: gamma,
		Beta:  mat.NewDense(1, features, nil),
		Eps:   1e-5,
	}
}

// Forward standardizes each feature column using the batch statistics,
// then scales by Gamma and shifts by Beta.
func (bn *BatchNorm1d) Forward(x mat.Matrix) (mat.Matrix, error) {
	batch, features := x.Dims()
	if _, g := bn.Gamma.Dims(); features != g {
		return nil, fmt.Errorf("batchnorm: input has %d features, want %d", features, g)
	}
	y := mat.NewDense(batch, features, nil)
	for j := 0; j < features; j++ {
		mean := 0.0
		for i := 0; i < batch; i++ {
			mean += x.At(i, j)
		}
		mean /= float64(batch)

		variance := 0.0
		for i := 0; i < batch; i++ {
			d := x.At(i, j) - mean
			variance += d * d
		}
		variance /= float64(batch)

		invStd := 1 / math.Sqrt(variance+bn.Eps)
		gamma, beta := bn.Gamma.At(0, j), bn.Beta.At(0, j)
		for i := 0; i < batch; i++ {
			y.Set(i, j, (x.At(i, j)-mean)*invStd*gamma+beta)
		}
	}
	return y, nil
}

func (bn *BatchNorm1d) Params() []*mat.Dense {
	return []*mat.Dense{bn.Gamma, bn.Beta}
}
