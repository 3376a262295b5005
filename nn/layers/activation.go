package layers

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ReLU applies max(0, x) elementwise.
type ReLU struct{}

func (ReLU) Forward(x mat.Matrix) (mat.Matrix, error) {
	r, c := x.Dims()
	y := mat.NewDense(r, c, nil)
	y.Apply(func(_, _ int, v float64) float64 {
		return math.Max(0, v)
	}, x)
	return y, nil
}

func (ReLU) Params() []*mat.Dense { return nil }

// Softmax turns a score vector into a probability distribution. The
// maximum score is subtracted before exponentiation so large scores do
// not overflow.
func Softmax(scores *mat.VecDense) *mat.VecDense {
	maxScore := scores.AtVec(0)
	for i := 1; i < scores.Len(); i++ {
		if v := scores.AtVec(i); v > maxScore {
			maxScore = v
		}
	}
	expSum := 0.0
	exps := make([]float64, scores.Len())
	for i := range exps {
		e := math.Exp(scores.AtVec(i) - maxScore)
		exps[i] = e
		expSum += e
	}
	probs := mat.NewVecDense(len(exps), exps)
	probs.ScaleVec(1/expSum, probs)
	return probs
}
