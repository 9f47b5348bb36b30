package errormetrics

import (
	"fmt"
	"math"

	"github.com/jaciz/error-metrics/floatsunrolled"
)

// RMSE computes the root mean squared error, sqrt(mean((yhat-y)^2)). A score of 0 means a
// perfect match with no errors.
func RMSE(predicted, observed []float64) (float64, error) {
	mse, err := MSE(predicted, observed)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MSE computes the mean squared error, mean((yhat-y)^2). Pairs with a missing value are
// excluded and an input with no valid pairs returns NaN.
func MSE(predicted, observed []float64) (float64, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return 0, err
	}
	return meanSquaredError(predicted, observed), nil
}

// SSE computes the sum of squared errors, sum((yhat-y)^2). An input with no valid pairs
// returns 0.
func SSE(predicted, observed []float64) (float64, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return 0, err
	}
	return squaredErrorSum(predicted, observed), nil
}

// MAE computes the mean absolute error, mean(abs(yhat-y)).
func MAE(predicted, observed []float64) (float64, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return 0, err
	}
	residual := floatsunrolled.SubTo(nil, predicted, observed)
	return mean(floatsunrolled.SumAbs(residual), len(residual)), nil
}

// MAPE calculates the mean absolute percent error, mean(abs(y-yhat)/y). The denominator keeps
// its sign. An observed value of 0 makes the result infinite unless the prediction is also 0,
// in which case the 0/0 point is skipped.
func MAPE(predicted, observed []float64) (float64, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return 0, err
	}

	var sum float64
	var n int
	for i := 0; i < len(observed); i++ {
		pct := math.Abs(observed[i]-predicted[i]) / observed[i]
		if math.IsNaN(pct) {
			continue
		}
		sum += pct
		n++
	}
	return mean(sum, n), nil
}

// SMAPE calculates the symmetric mean absolute percent error where each absolute error is
// scaled by the mean of the predicted and observed value at that point. A point where both
// values are 0 yields 0/0 and is skipped.
func SMAPE(predicted, observed []float64) (float64, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return 0, err
	}

	var sum float64
	var n int
	for i := 0; i < len(observed); i++ {
		denom := (predicted[i] + observed[i]) / 2.0
		val := math.Abs(predicted[i]-observed[i]) / denom
		if math.IsNaN(val) {
			continue
		}
		sum += val
		n++
	}
	return mean(sum, n), nil
}

// LQE computes the log quotient error, sum(log(yhat) - log(y)). Non-positive inputs are not
// special cased and surface as NaN or -Inf in the result; use LQEStrict to reject them.
func LQE(predicted, observed []float64) (float64, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return 0, err
	}
	return logQuotientSum(predicted, observed), nil
}

// LQEStrict is LQE but fails with ErrNumericDomain on the first non-positive value.
func LQEStrict(predicted, observed []float64) (float64, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return 0, err
	}
	for i := 0; i < len(observed); i++ {
		if predicted[i] <= 0 {
			return 0, fmt.Errorf("predicted value %g at valid pair %d, %w", predicted[i], i, ErrNumericDomain)
		}
		if observed[i] <= 0 {
			return 0, fmt.Errorf("observed value %g at valid pair %d, %w", observed[i], i, ErrNumericDomain)
		}
	}
	return logQuotientSum(predicted, observed), nil
}

func logQuotientSum(predicted, observed []float64) float64 {
	quotients := make([]float64, len(observed))
	for i := 0; i < len(observed); i++ {
		quotients[i] = math.Log(predicted[i]) - math.Log(observed[i])
	}
	return floatsunrolled.Sum(quotients)
}
