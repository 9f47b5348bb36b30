package errormetrics

import (
	"fmt"
	"math"

	"github.com/jaciz/error-metrics/floatsunrolled"
	"gonum.org/v1/gonum/floats"
)

// validPairs returns copies of predicted and observed keeping only the positions where
// both values are present. Every reduction in this package goes through here so a missing
// value in either input drops the whole pair.
func validPairs(predicted, observed []float64) ([]float64, []float64, error) {
	if len(predicted) != len(observed) {
		return nil, nil, fmt.Errorf(
			"predicted has length of %d, but observed has a length of %d, %w",
			len(predicted), len(observed), ErrDimensionMismatch,
		)
	}

	if !floats.HasNaN(predicted) && !floats.HasNaN(observed) {
		predCopy := make([]float64, len(predicted))
		obsCopy := make([]float64, len(observed))
		copy(predCopy, predicted)
		copy(obsCopy, observed)
		return predCopy, obsCopy, nil
	}

	predCopy := make([]float64, 0, len(predicted))
	obsCopy := make([]float64, 0, len(observed))
	for i := 0; i < len(predicted); i++ {
		if math.IsNaN(predicted[i]) || math.IsNaN(observed[i]) {
			continue
		}
		predCopy = append(predCopy, predicted[i])
		obsCopy = append(obsCopy, observed[i])
	}
	return predCopy, obsCopy, nil
}

// mean divides a sum by a count, yielding NaN when there is nothing to average
func mean(sum float64, n int) float64 {
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// squaredErrorSum expects already filtered pairs
func squaredErrorSum(predicted, observed []float64) float64 {
	residual := floatsunrolled.SubTo(nil, predicted, observed)
	return floatsunrolled.SumSq(residual)
}

func meanSquaredError(predicted, observed []float64) float64 {
	return mean(squaredErrorSum(predicted, observed), len(observed))
}

func rootMeanSquare(x []float64) float64 {
	return math.Sqrt(mean(floatsunrolled.SumSq(x), len(x)))
}
