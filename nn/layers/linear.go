package layers

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Linear is a fully connected layer mapping (batch, in) to (batch, out).
type Linear struct {
	W *mat.Dense // out x in
	B *mat.Dense // 1 x out
}

// NewLinear(inDim→outDim) draws W uniformly from ±1/sqrt(inDim) and
// zeroes B.
func NewLinear(inDim, outDim int) *Linear {
	return &Linear{
		W: mat.NewDense(outDim, inDim, randomArray(outDim*inDim, float64(inDim))),
		B: mat.NewDense(1, outDim, nil),
	}
}

func randomArray(size int, v float64) []float64 {
	dist := distuv.Uniform{
		Min: -1 / math.Sqrt(v),
		Max: 1 / math.Sqrt(v),
	}

	data := make([]float64, size)
	for i := 0; i < size; i++ {
		data[i] = dist.Rand()
	}
	return data
}

// Forward computes x·Wᵀ + b row-wise.
func (l *Linear) Forward(x mat.Matrix) (mat.Matrix, error) {
	batch, in := x.Dims()
	out, wIn := l.W.Dims()
	if in != wIn {
		return nil, fmt.Errorf("linear: input has %d features, want %d", in, wIn)
	}
	y := mat.NewDense(batch, out, nil)
	y.Mul(x, l.W.T())
	y.Apply(func(_, j int, v float64) float64 {
		return v + l.B.At(0, j)
	}, y)
	return y, nil
}

func (l *Linear) Params() []*mat.Dense {
	return []*mat.Dense{l.W, l.B}
}
