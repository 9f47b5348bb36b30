package errormetrics

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScores(t *testing.T) {
	testData := map[string]struct {
		predicted []float64
		observed  []float64
		expected  *Scores
		err       error
	}{
		"basic": {
			predicted: []float64{2, 4, 6},
			observed:  []float64{1, 3, 5},
			expected: &Scores{
				N:     3,
				RMSE:  1.0,
				MSE:   1.0,
				SSE:   3.0,
				MAE:   1.0,
				MAPE:  (1.0 + 1.0/3.0 + 0.2) / 3.0,
				SMAPE: (1.0/1.5 + 1.0/3.5 + 1.0/5.5) / 3.0,
				LQE:   math.Log(3.2),
				R2:    1.0 - 3.0/8.0,
			},
		},
		"missing values": {
			predicted: []float64{2, math.NaN(), 4, 6},
			observed:  []float64{1, 7, 3, 5},
			expected: &Scores{
				N:     3,
				RMSE:  1.0,
				MSE:   1.0,
				SSE:   3.0,
				MAE:   1.0,
				MAPE:  (1.0 + 1.0/3.0 + 0.2) / 3.0,
				SMAPE: (1.0/1.5 + 1.0/3.5 + 1.0/5.5) / 3.0,
				LQE:   math.Log(3.2),
				R2:    1.0 - 3.0/8.0,
			},
		},
		"length mismatch": {
			predicted: []float64{1, 2},
			observed:  []float64{1},
			err:       ErrDimensionMismatch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := NewScores(td.predicted, td.observed)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected.N, res.N)
			assert.InDelta(t, td.expected.RMSE, res.RMSE, 1e-9, "rmse")
			assert.InDelta(t, td.expected.MSE, res.MSE, 1e-9, "mse")
			assert.InDelta(t, td.expected.SSE, res.SSE, 1e-9, "sse")
			assert.InDelta(t, td.expected.MAE, res.MAE, 1e-9, "mae")
			assert.InDelta(t, td.expected.MAPE, res.MAPE, 1e-9, "mape")
			assert.InDelta(t, td.expected.SMAPE, res.SMAPE, 1e-9, "smape")
			assert.InDelta(t, td.expected.LQE, res.LQE, 1e-9, "lqe")
			assert.InDelta(t, td.expected.R2, res.R2, 1e-9, "r2")
		})
	}
}

func TestRSquared(t *testing.T) {
	testData := map[string]struct {
		predicted []float64
		observed  []float64
		expected  float64
	}{
		"perfect fit": {
			[]float64{1, 2, 3},
			[]float64{1, 2, 3},
			1.0,
		},
		"constant observed and exact": {
			[]float64{2, 2, 2},
			[]float64{2, 2, 2},
			1.0,
		},
		"mean prediction": {
			[]float64{2, 2, 2},
			[]float64{1, 2, 3},
			0.0,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := RSquared(td.predicted, td.observed)
			require.Nil(t, err)
			assert.InDelta(t, td.expected, res, 1e-9)
		})
	}
}

func TestRSquaredWithoutPairs(t *testing.T) {
	nan := math.NaN()

	testData := map[string]struct {
		predicted []float64
		observed  []float64
	}{
		"empty":       {[]float64{}, []float64{}},
		"all missing": {[]float64{nan}, []float64{1}},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := RSquared(td.predicted, td.observed)
			require.Nil(t, err)
			assert.True(t, math.IsNaN(res), "expected NaN, got %f", res)

			s, err := NewScores(td.predicted, td.observed)
			require.Nil(t, err)
			assert.True(t, math.IsNaN(s.R2), "expected NaN, got %f", s.R2)
			assert.True(t, math.IsNaN(s.MSE), "expected NaN, got %f", s.MSE)
		})
	}
}

func TestScoresTablePrint(t *testing.T) {
	s, err := NewScores([]float64{2, 4, 6}, []float64{1, 3, 5})
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, s.TablePrint(&buf, "", "  ", 0))

	out := buf.String()
	assert.Contains(t, out, "Scores:\n")
	assert.Regexp(t, `Pairs\s+3\n`, out)
	assert.Regexp(t, `RMSE\s+1\.0000\n`, out)
	assert.Regexp(t, `SSE\s+3\.0000\n`, out)
	assert.Regexp(t, `R2\s+0\.6250\n`, out)
}
