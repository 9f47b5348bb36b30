package errormetrics

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"
)

// Scores tracks every elementary error metric between a predicted and observed sequence
type Scores struct {
	N     int     `json:"valid_pairs"`
	RMSE  float64 `json:"root_mean_squared_error"`
	MSE   float64 `json:"mean_squared_error"`
	SSE   float64 `json:"sum_squared_error"`
	MAE   float64 `json:"mean_absolute_error"`
	MAPE  float64 `json:"mean_absolute_percent_error"`
	SMAPE float64 `json:"symmetric_mean_absolute_percent_error"`
	LQE   float64 `json:"log_quotient_error"`
	R2    float64 `json:"r_squared"`
}

// NewScores calculates the scores given the predicted and observed input slice values
func NewScores(predicted, observed []float64) (*Scores, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return nil, err
	}

	mse, err := MSE(predicted, observed)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean squared error, %w", err)
	}
	sse, err := SSE(predicted, observed)
	if err != nil {
		return nil, fmt.Errorf("unable to compute sum of squared errors, %w", err)
	}
	mae, err := MAE(predicted, observed)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute error, %w", err)
	}
	mape, err := MAPE(predicted, observed)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute percent error, %w", err)
	}
	smape, err := SMAPE(predicted, observed)
	if err != nil {
		return nil, fmt.Errorf("unable to compute symmetric mean absolute percent error, %w", err)
	}
	lqe, err := LQE(predicted, observed)
	if err != nil {
		return nil, fmt.Errorf("unable to compute log quotient error, %w", err)
	}
	rs, err := RSquared(predicted, observed)
	if err != nil {
		return nil, fmt.Errorf("unable to compute r-squared, %w", err)
	}

	return &Scores{
		N:     len(observed),
		RMSE:  math.Sqrt(mse),
		MSE:   mse,
		SSE:   sse,
		MAE:   mae,
		MAPE:  mape,
		SMAPE: smape,
		LQE:   lqe,
		R2:    rs,
	}, nil
}

// RSquared computes the r squared value between the predicted and observed where 1.0 means perfect
// fit and 0 represents no relationship. Without any valid pairs the value is NaN. A constant observed
// series matched exactly by the prediction is a perfect fit.
func RSquared(predicted, observed []float64) (float64, error) {
	predicted, observed, err := validPairs(predicted, observed)
	if err != nil {
		return 0, err
	}
	if len(observed) == 0 {
		return math.NaN(), nil
	}
	r2 := stat.RSquaredFrom(predicted, observed, nil)
	if math.IsNaN(r2) {
		return 1.0, nil
	}
	return r2, nil
}

// TablePrint writes the scores as an aligned table
func (s *Scores) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	if _, err := fmt.Fprintf(w, "%s%sScores:\n", prefix, indentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	rows := []struct {
		label string
		value float64
	}{
		{"RMSE", s.RMSE},
		{"MSE", s.MSE},
		{"SSE", s.SSE},
		{"MAE", s.MAE},
		{"MAPE", s.MAPE},
		{"SMAPE", s.SMAPE},
		{"LQE", s.LQE},
		{"R2", s.R2},
	}
	if _, err := fmt.Fprintf(tbl, "%s%sPairs\t%d\t\n", prefix, indentExpand(indent, indentGrowth+1), s.N); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%.4f\t\n", prefix, indentExpand(indent, indentGrowth+1), row.label, row.value); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
