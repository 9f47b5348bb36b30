package errormetrics

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/goccy/go-json"
)

// Report bundles the elementary scores with an optional set of Theil statistics
type Report struct {
	Scores *Scores       `json:"scores"`
	Theil  *TheilResults `json:"theil,omitempty"`
}

// NewReport scores the predicted values against the observed. Theil statistics are only
// computed when the selection is non-empty, with ts following the same rules as TheilStats.
func NewReport(selection []Statistic, predicted, observed, ts []float64) (*Report, error) {
	scores, err := NewScores(predicted, observed)
	if err != nil {
		return nil, fmt.Errorf("unable to compute scores, %w", err)
	}
	r := &Report{Scores: scores}
	if len(selection) == 0 {
		return r, nil
	}

	theil, err := TheilStats(selection, predicted, observed, ts)
	if err != nil {
		return nil, fmt.Errorf("unable to compute theil statistics, %w", err)
	}
	r.Theil = theil
	return r, nil
}

// TablePrint writes the scores followed by the Theil statistics
func (r *Report) TablePrint(w io.Writer, prefix, indent string) error {
	if r.Scores != nil {
		if err := r.Scores.TablePrint(w, prefix, indent, 0); err != nil {
			return err
		}
	}
	if r.Theil == nil {
		return nil
	}

	if _, err := fmt.Fprintf(w, "%sTheil:\n", prefix); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	for _, v := range r.Theil.values {
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%.4f\t\n", prefix, indentExpand(indent, 1), v.Statistic, v.Value); err != nil {
			return err
		}
	}
	return tbl.Flush()
}

// jsonFloat writes NaN and infinities as null since JSON has no representation for them
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// MarshalJSON encodes the scores with non-finite values written as null
func (s Scores) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		N     int       `json:"valid_pairs"`
		RMSE  jsonFloat `json:"root_mean_squared_error"`
		MSE   jsonFloat `json:"mean_squared_error"`
		SSE   jsonFloat `json:"sum_squared_error"`
		MAE   jsonFloat `json:"mean_absolute_error"`
		MAPE  jsonFloat `json:"mean_absolute_percent_error"`
		SMAPE jsonFloat `json:"symmetric_mean_absolute_percent_error"`
		LQE   jsonFloat `json:"log_quotient_error"`
		R2    jsonFloat `json:"r_squared"`
	}{
		N:     s.N,
		RMSE:  jsonFloat(s.RMSE),
		MSE:   jsonFloat(s.MSE),
		SSE:   jsonFloat(s.SSE),
		MAE:   jsonFloat(s.MAE),
		MAPE:  jsonFloat(s.MAPE),
		SMAPE: jsonFloat(s.SMAPE),
		LQE:   jsonFloat(s.LQE),
		R2:    jsonFloat(s.R2),
	})
}
