// mccdemo: evaluates the Minimum Class Confusion loss on synthetic
// target-domain batches.
//
// Usage:
//
//	mccdemo --batch=32 --classes=10 --temperature=2.0
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/EvieQ01/Transfer-Learning-Library/adaptation"
	"github.com/EvieQ01/Transfer-Learning-Library/nn"
	"github.com/EvieQ01/Transfer-Learning-Library/nn/layers"
	"github.com/EvieQ01/Transfer-Learning-Library/utils"
)

var (
	batchSize   = flag.Int("batch", 32, "Samples per target batch")
	numClasses  = flag.Int("classes", 10, "Number of classes")
	featureDim  = flag.Int("features", 64, "Input feature dimension")
	temperature = flag.Float64("temperature", 2.0, "Softmax temperature")
	batches     = flag.Int("batches", 10, "Number of synthetic batches")
	verbose     = flag.Bool("verbose", true, "Verbose output")
	seed        = flag.Int64("seed", 42, "Random seed")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose
	rng := rand.New(rand.NewSource(*seed))

	config := &utils.Config{
		BatchSize:   *batchSize,
		NumClasses:  *numClasses,
		FeatureDim:  *featureDim,
		Temperature: *temperature,
		Batches:     *batches,
	}
	if err := utils.ValidateConfig(config); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	fmt.Printf("Configuration:\n")
	fmt.Printf("  Batch size:   %d\n", config.BatchSize)
	fmt.Printf("  Classes:      %d\n", config.NumClasses)
	fmt.Printf("  Features:     %d\n", config.FeatureDim)
	fmt.Printf("  Temperature:  %.2f\n", config.Temperature)
	fmt.Printf("  Batches:      %d\n", config.Batches)
	fmt.Println()

	stats := &utils.TimingStats{}
	start := time.Now()

	modelStart := time.Now()
	backbone := nn.NewLinearBackbone(config.FeatureDim, 128)
	classifier := nn.NewClassifier(backbone, config.NumClasses, 0)
	stats.ModelInitTime = time.Since(modelStart)

	loss := adaptation.NewMinimumClassConfusionLoss(config.Temperature)

	var lastLogits mat.Matrix
	for b := 0; b < config.Batches; b++ {
		input := mat.NewDense(config.BatchSize, config.FeatureDim, nil)
		for i := 0; i < config.BatchSize; i++ {
			for j := 0; j < config.FeatureDim; j++ {
				input.Set(i, j, rng.NormFloat64())
			}
		}

		forwardStart := time.Now()
		logits, err := classifier.Forward(input)
		if err != nil {
			fmt.Fprintln(os.Stderr, "forward pass:", err)
			os.Exit(1)
		}
		stats.ForwardPassTime += time.Since(forwardStart)
		lastLogits = logits

		lossStart := time.Now()
		value := loss.Evaluate(logits)
		stats.LossTime += time.Since(lossStart)

		best, confidence := topPrediction(logits)
		fmt.Printf("batch %2d  mcc loss %.6f  sample-0 top class %d (p=%.3f)\n",
			b, value, best, confidence)
	}
	stats.TotalTime = time.Since(start)

	fmt.Println("\nTemperature sweep on the last batch:")
	for _, t := range []float64{0.5, 1, 2, 4, 8} {
		value := adaptation.NewMinimumClassConfusionLoss(t).Evaluate(lastLogits)
		fmt.Printf("  T=%-4.1f loss %.6f\n", t, value)
	}

	utils.PrintTimingStats(stats, config.Batches)
}

// topPrediction reports the most likely class of the first sample in
// the batch and its softmax probability.
func topPrediction(logits mat.Matrix) (int, float64) {
	_, classes := logits.Dims()
	row := mat.NewVecDense(classes, nil)
	for j := 0; j < classes; j++ {
		row.SetVec(j, logits.At(0, j))
	}
	probs := layers.Softmax(row)
	best, bestP := 0, probs.AtVec(0)
	for j := 1; j < classes; j++ {
		if p := probs.AtVec(j); p > bestP {
			best, bestP = j, p
		}
	}
	return best, bestP
}
