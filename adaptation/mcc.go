// Package adaptation provides regularization losses for unsupervised
// domain adaptation on an unlabeled target domain.
package adaptation

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// entropyEpsilon keeps the logarithm finite when a probability entry is
// exactly zero.
const entropyEpsilon = 1e-5

// Entropy returns the per-row entropy of a row-stochastic prediction
// matrix. Entry i is -sum_j p[i,j]*log(p[i,j]+1e-5), summed over the
// class dimension (not averaged).
func Entropy(predictions mat.Matrix) *mat.VecDense {
	n, k := predictions.Dims()
	h := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < k; j++ {
			p := predictions.At(i, j)
			sum -= p * math.Log(p+entropyEpsilon)
		}
		h.SetVec(i, sum)
	}
	return h
}

// MinimumClassConfusionLoss penalizes pairwise class confusion in
// classifier predictions on target-domain batches. Predictions are
// temperature-scaled, samples are reweighted by their prediction
// entropy (confident samples count more), and the loss is the average
// off-diagonal mass of the row-normalized class confusion matrix.
//
// Temperature must be positive: 1.0 leaves the softmax unchanged,
// larger values flatten the predictions, smaller values sharpen them.
// It is not validated; a non-positive value surfaces as NaN in the
// returned loss rather than an error.
type MinimumClassConfusionLoss struct {
	Temperature float64
}

// NewMinimumClassConfusionLoss returns a loss with the given fixed
// temperature. The value is safe to reuse across batches and from
// multiple goroutines.
func NewMinimumClassConfusionLoss(temperature float64) *MinimumClassConfusionLoss {
	return &MinimumClassConfusionLoss{Temperature: temperature}
}

// Evaluate maps a (batch, classes) logits matrix to a scalar loss.
//
// No shape or range validation is performed: malformed input surfaces
// as a gonum dimension panic, and a class that receives zero weighted
// prediction mass divides by zero during row normalization, propagating
// NaN into the result.
func (l *MinimumClassConfusionLoss) Evaluate(logits mat.Matrix) float64 {
	_, numClasses := logits.Dims()

	predictions := softmax(logits, l.Temperature)
	weights := entropyWeights(predictions)
	confusion := confusionMatrix(predictions, weights)
	normalizeRows(confusion)

	return (mat.Sum(confusion) - mat.Trace(confusion)) / float64(numClasses)
}

// softmax returns the row-wise softmax of logits scaled by 1/temperature.
// The row maximum is subtracted before exponentiation so large scores do
// not overflow.
func softmax(logits mat.Matrix, temperature float64) *mat.Dense {
	n, k := logits.Dims()
	out := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		maxScore := math.Inf(-1)
		for j := 0; j < k; j++ {
			if v := logits.At(i, j) / temperature; v > maxScore {
				maxScore = v
			}
		}
		expSum := 0.0
		for j := 0; j < k; j++ {
			e := math.Exp(logits.At(i, j)/temperature - maxScore)
			out.Set(i, j, e)
			expSum += e
		}
		for j := 0; j < k; j++ {
			out.Set(i, j, out.At(i, j)/expSum)
		}
	}
	return out
}

// entropyWeights maps per-sample prediction entropy to sample weights
// w_i = 1+exp(-H_i), rescaled so the batch mean is exactly 1 (sum is
// the batch size). The weights are plain coefficients, not part of any
// gradient computation.
func entropyWeights(predictions mat.Matrix) *mat.VecDense {
	n, _ := predictions.Dims()
	weights := Entropy(predictions)
	sum := 0.0
	for i := 0; i < n; i++ {
		w := 1 + math.Exp(-weights.AtVec(i))
		weights.SetVec(i, w)
		sum += w
	}
	weights.ScaleVec(float64(n)/sum, weights)
	return weights
}

// confusionMatrix accumulates the weighted class co-activation matrix
// C = (predictions * weights)^T predictions, a (classes, classes)
// matrix that is symmetric before normalization.
func confusionMatrix(predictions *mat.Dense, weights *mat.VecDense) *mat.Dense {
	n, k := predictions.Dims()
	weighted := mat.NewDense(n, k, nil)
	weighted.Apply(func(i, _ int, v float64) float64 {
		return v * weights.AtVec(i)
	}, predictions)

	confusion := mat.NewDense(k, k, nil)
	confusion.Mul(weighted.T(), predictions)
	return confusion
}

// normalizeRows divides each row by its sum in place. A zero row sum is
// deliberately not guarded against; it yields NaN for that row.
func normalizeRows(m *mat.Dense) {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		row := m.RawRowView(i)
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		for j := range row {
			row[j] /= sum
		}
	}
}
