package plot

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	errormetrics "github.com/jaciz/error-metrics"
	"github.com/jaciz/error-metrics/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineSeries(t *testing.T) {
	line := LineSeries("test", []string{"a", "b"}, [][]float64{
		{1, math.NaN(), 3},
		{4, 5, 6},
	})
	require.Len(t, line.MultiSeries, 2)

	a, ok := line.MultiSeries[0].Data.([]opts.LineData)
	require.True(t, ok)
	assert.Equal(t, []opts.LineData{{Value: 1.0}, {Value: missing}, {Value: 3.0}}, a)
}

func TestLineComparison(t *testing.T) {
	s, err := series.NewSet([]float64{1, 2}, []float64{1, 3}, nil)
	require.Nil(t, err)
	assert.Len(t, LineComparison(s).MultiSeries, 2)

	s, err = series.NewSet([]float64{1, 2}, []float64{1, 3}, []float64{1, 2.5})
	require.Nil(t, err)
	assert.Len(t, LineComparison(s).MultiSeries, 3)
}

func TestRender(t *testing.T) {
	s, err := series.NewSet([]float64{2, 4, 6}, []float64{1, 3, 5}, []float64{1, 3, 7})
	require.Nil(t, err)
	r, err := errormetrics.NewReport([]errormetrics.Statistic{errormetrics.All}, s.Predicted, s.Observed, s.TS)
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, Render(&buf, s, r))
	out := buf.String()
	assert.Contains(t, out, "Predicted vs Observed")
	assert.Contains(t, out, "Residual")
	assert.Contains(t, out, "Theil Statistics")

	assert.ErrorIs(t, Render(&buf, nil, r), ErrNoSet)

	path := filepath.Join(t.TempDir(), "report.html")
	require.Nil(t, RenderFile(path, s, nil))
	content, err := os.ReadFile(path)
	require.Nil(t, err)
	assert.NotContains(t, string(content), "Theil Statistics")
}
