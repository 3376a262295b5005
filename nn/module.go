package nn

import "gonum.org/v1/gonum/mat"

// Module defines a single layer/unit in the network.
type Module interface {
	Forward(input mat.Matrix) (mat.Matrix, error)
	// Params returns the learnable parameter matrices of the module in
	// a stable order. Modules without parameters return nil.
	Params() []*mat.Dense
}

// Sequential chains multiple Modules in order.
type Sequential struct {
	Layers []Module
}

// Forward applies each layer in sequence.
func (s *Sequential) Forward(x mat.Matrix) (mat.Matrix, error) {
	var err error
	out := x
	for _, layer := range s.Layers {
		out, err = layer.Forward(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Params collects the parameters of all layers.
func (s *Sequential) Params() []*mat.Dense {
	var params []*mat.Dense
	for _, layer := range s.Layers {
		params = append(params, layer.Params()...)
	}
	return params
}
