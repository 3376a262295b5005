package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/EvieQ01/Transfer-Learning-Library/nn/layers"
)

// Backbone extracts a fixed-size feature vector per sample.
type Backbone interface {
	Module
	OutFeatures() int
}

// ParamGroup pairs a set of parameters with a learning-rate multiplier,
// so a pretrained backbone can be fine-tuned more slowly than freshly
// initialized layers.
type ParamGroup struct {
	Params []*mat.Dense
	LRMult float64
}

// DefaultBottleneckDim is used when NewClassifier is given a
// non-positive bottleneck dimension.
const DefaultBottleneckDim = 256

// Classifier composes a feature backbone with a bottleneck projection
// (Linear → BatchNorm1d → ReLU) and a classification head producing
// per-class logits.
type Classifier struct {
	backbone   Backbone
	bottleneck *Sequential
	head       *layers.Linear
	numClasses int
}

func NewClassifier(backbone Backbone, numClasses, bottleneckDim int) *Classifier {
	if bottleneckDim <= 0 {
		bottleneckDim = DefaultBottleneckDim
	}
	return &Classifier{
		backbone: backbone,
		bottleneck: &Sequential{Layers: []Module{
			layers.NewLinear(backbone.OutFeatures(), bottleneckDim),
			layers.NewBatchNorm1d(bottleneckDim),
			layers.ReLU{},
		}},
		head:       layers.NewLinear(bottleneckDim, numClasses),
		numClasses: numClasses,
	}
}

// Forward maps a (batch, features) input to (batch, NumClasses) logits.
func (c *Classifier) Forward(x mat.Matrix) (mat.Matrix, error) {
	features, err := c.backbone.Forward(x)
	if err != nil {
		return nil, fmt.Errorf("backbone: %w", err)
	}
	bottled, err := c.bottleneck.Forward(features)
	if err != nil {
		return nil, fmt.Errorf("bottleneck: %w", err)
	}
	return c.head.Forward(bottled)
}

func (c *Classifier) NumClasses() int { return c.numClasses }

func (c *Classifier) Params() []*mat.Dense {
	params := append([]*mat.Dense(nil), c.backbone.Params()...)
	params = append(params, c.bottleneck.Params()...)
	return append(params, c.head.Params()...)
}

// ParamGroups partitions the parameters for differential learning
// rates: the pretrained backbone at 0.1x, the freshly initialized
// bottleneck and head at 1.0x.
func (c *Classifier) ParamGroups() []ParamGroup {
	newParams := append(c.bottleneck.Params(), c.head.Params()...)
	return []ParamGroup{
		{Params: c.backbone.Params(), LRMult: 0.1},
		{Params: newParams, LRMult: 1.0},
	}
}

// LinearBackbone is a minimal Backbone, a single fully connected
// projection. It stands in for a pretrained image backbone in tests
// and synthetic-data experiments.
type LinearBackbone struct {
	proj *layers.Linear
	out  int
}

func NewLinearBackbone(inFeatures, outFeatures int) *LinearBackbone {
	return &LinearBackbone{
		proj: layers.NewLinear(inFeatures, outFeatures),
		out:  outFeatures,
	}
}

func (b *LinearBackbone) Forward(x mat.Matrix) (mat.Matrix, error) {
	return b.proj.Forward(x)
}

func (b *LinearBackbone) Params() []*mat.Dense { return b.proj.Params() }

func (b *LinearBackbone) OutFeatures() int { return b.out }
