package nn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// dummy layer: adds a constant
type addLayer struct{ c float64 }

func (l *addLayer) Forward(input mat.Matrix) (mat.Matrix, error) {
	r, c := input.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, _ int, v float64) float64 { return v + l.c }, input)
	return out, nil
}

func (l *addLayer) Params() []*mat.Dense { return nil }

// dummy layer: error on forward
type errLayer struct{}

func (l *errLayer) Forward(input mat.Matrix) (mat.Matrix, error) {
	return nil, errors.New("fail")
}

func (l *errLayer) Params() []*mat.Dense { return nil }

func TestSequential_Forward(t *testing.T) {
	seq := &Sequential{Layers: []Module{&addLayer{c: 1}, &addLayer{c: 2}}}
	out, err := seq.Forward(mat.NewDense(2, 2, []float64{0, 1, 2, 3}))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, out.At(0, 0), 1e-12)
	assert.InDelta(t, 6.0, out.At(1, 1), 1e-12)
}

func TestSequential_ForwardError(t *testing.T) {
	seq := &Sequential{Layers: []Module{&addLayer{c: 1}, &errLayer{}}}
	_, err := seq.Forward(mat.NewDense(1, 1, []float64{0}))
	require.Error(t, err)
}
