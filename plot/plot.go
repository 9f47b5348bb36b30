package plot

import (
	"errors"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	errormetrics "github.com/jaciz/error-metrics"
	"github.com/jaciz/error-metrics/series"
)

var ErrNoSet = errors.New("no series set to plot")

// missing is how echarts expects a gap in a line
const missing = "-"

// LineSeries generates an echart multi-line chart indexed by position. The input y is a slice
// of series that must all have the same length. NaN values are drawn as gaps.
func LineSeries(title string, seriesName []string, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	var n int
	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		n = max(n, len(y[i]))
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			if math.IsNaN(y[i][j]) || math.IsInf(y[i][j], 0) {
				lineData[i] = append(lineData[i], opts.LineData{Value: missing})
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	x := make([]int, n)
	for i := range x {
		x[i] = i
	}
	line = line.SetXAxis(x)
	for i, name := range seriesName {
		line = line.AddSeries(name, lineData[i])
	}
	return line
}

// LineComparison plots the predicted against the observed values along with the trend and
// seasonal values when present
func LineComparison(s *series.Set) *charts.Line {
	names := []string{"Observed", "Predicted"}
	y := [][]float64{s.Observed, s.Predicted}
	if s.TS != nil {
		names = append(names, "Trend+Seasonal")
		y = append(y, s.TS)
	}
	return LineSeries("Predicted vs Observed", names, y)
}

// LineResidual plots predicted - observed per point
func LineResidual(s *series.Set) *charts.Line {
	return LineSeries("Residual", []string{"Residual"}, [][]float64{s.Residual()})
}

// BarTheil plots each computed Theil statistic
func BarTheil(r *errormetrics.TheilResults) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Theil Statistics",
			},
		),
	)

	names := make([]string, 0, r.Len())
	barData := make([]opts.BarData, 0, r.Len())
	for _, v := range r.Values() {
		names = append(names, string(v.Statistic))
		if math.IsNaN(v.Value) || math.IsInf(v.Value, 0) {
			barData = append(barData, opts.BarData{Value: missing})
			continue
		}
		barData = append(barData, opts.BarData{Value: v.Value})
	}
	bar.SetXAxis(names).AddSeries("Value", barData)
	return bar
}

// Render writes an html page with the comparison and residual charts, plus the Theil
// statistics when the report has any
func Render(w io.Writer, s *series.Set, r *errormetrics.Report) error {
	if s == nil {
		return ErrNoSet
	}
	page := components.NewPage()
	page.AddCharts(
		LineComparison(s),
		LineResidual(s),
	)
	if r != nil && r.Theil != nil {
		page.AddCharts(BarTheil(r.Theil))
	}
	return page.Render(w)
}

// RenderFile is Render writing to a new file at path
func RenderFile(path string, s *series.Set, r *errormetrics.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return Render(file, s, r)
}
