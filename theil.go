package errormetrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// TheilU1 computes Theil's U1 inequality coefficient,
// rmse / (sqrt(mean(yhat^2)) + sqrt(mean(y^2))). 0 is a perfect fit.
func TheilU1(predicted, observed []float64) (float64, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return 0, err
	}
	rmse := math.Sqrt(meanSquaredError(predicted, observed))
	return rmse / (rootMeanSquare(predicted) + rootMeanSquare(observed)), nil
}

// TheilU2 computes Theil's U2 coefficient, rmse / sqrt(mean(y^2)).
func TheilU2(predicted, observed []float64) (float64, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return 0, err
	}
	rmse := math.Sqrt(meanSquaredError(predicted, observed))
	return rmse / rootMeanSquare(observed), nil
}

// TheilBias computes the proportion of the mean squared error caused by the difference in
// means, (mean(yhat) - mean(y))^2 / mse.
func TheilBias(predicted, observed []float64) (float64, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return 0, err
	}
	bias, _ := biasVarProportions(predicted, observed)
	return bias, nil
}

// TheilVar computes the proportion of the mean squared error caused by the difference in
// sample standard deviations, (sd(yhat) - sd(y))^2 / mse. The standard deviations use
// n-1 in the denominator.
func TheilVar(predicted, observed []float64) (float64, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return 0, err
	}
	_, variance := biasVarProportions(predicted, observed)
	return variance, nil
}

// TheilNoise computes the unsystematic proportion of the mean squared error, 1 - bias - var.
func TheilNoise(predicted, observed []float64) (float64, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return 0, err
	}
	bias, variance := biasVarProportions(predicted, observed)
	return 1.0 - bias - variance, nil
}

// TheilSTLComp computes the ratio of the forecast error to the error of the trend and
// seasonal component, rmse(yhat, y) / rmse(y, ts).
func TheilSTLComp(predicted, observed, ts []float64) (float64, error) {
	if ts == nil {
		return 0, fmt.Errorf("stlcomp requires trend and seasonal values, %w", ErrMissingArgument)
	}
	forecastErr, err := RMSE(predicted, observed)
	if err != nil {
		return 0, err
	}
	if len(ts) != len(observed) {
		return 0, fmt.Errorf(
			"observed has length of %d, but trend and seasonal has a length of %d, %w",
			len(observed), len(ts), ErrDimensionMismatch,
		)
	}
	stlErr, err := RMSE(observed, ts)
	if err != nil {
		return 0, err
	}
	return forecastErr / stlErr, nil
}

// biasVarProportions expects already filtered pairs. Neither proportion is clamped so a
// zero mean squared error gives NaN or Inf.
func biasVarProportions(predicted, observed []float64) (float64, float64) {
	mse := meanSquaredError(predicted, observed)

	meanDiff := stat.Mean(predicted, nil) - stat.Mean(observed, nil)
	stdDiff := stat.StdDev(predicted, nil) - stat.StdDev(observed, nil)
	return meanDiff * meanDiff / mse, stdDiff * stdDiff / mse
}
