package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLinear_Identity(t *testing.T) {
	l := NewLinear(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				l.W.Set(i, j, 1)
			} else {
				l.W.Set(i, j, 0)
			}
		}
	}

	x := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	out, err := l.Forward(x)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, x.At(i, j), out.At(i, j), 1e-12)
		}
	}
}

func TestLinear_Bias(t *testing.T) {
	l := NewLinear(2, 2)
	l.W.Zero()
	l.B.Set(0, 0, 0.5)
	l.B.Set(0, 1, -0.5)

	out, err := l.Forward(mat.NewDense(1, 2, []float64{3, 4}))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out.At(0, 0), 1e-12)
	assert.InDelta(t, -0.5, out.At(0, 1), 1e-12)
}

func TestLinear_ShapeMismatch(t *testing.T) {
	l := NewLinear(4, 2)
	_, err := l.Forward(mat.NewDense(1, 3, nil))
	require.Error(t, err)
}

func TestLinear_InitBounds(t *testing.T) {
	l := NewLinear(100, 10)
	bound := 1.0 / 10.0 // 1/sqrt(100)
	r, c := l.W.Dims()
	assert.Equal(t, 10, r)
	assert.Equal(t, 100, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := l.W.At(i, j)
			assert.GreaterOrEqual(t, v, -bound)
			assert.LessOrEqual(t, v, bound)
		}
	}
}
