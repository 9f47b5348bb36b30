package series

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrEmptySeries        = errors.New("no values in series")
	ErrDatasetLenMismatch = errors.New("series have different lengths")
)

// Set holds aligned predicted, observed and optional trend+seasonal values. Predicted and
// Observed always have the same length. TS is nil when no trend+seasonal values are known,
// otherwise it matches Observed in length.
type Set struct {
	Predicted []float64
	Observed  []float64
	TS        []float64
}

// NewSet returns an instance of a Set copying the input slices. ts may be nil.
func NewSet(predicted, observed, ts []float64) (*Set, error) {
	if len(observed) == 0 {
		return nil, ErrEmptySeries
	}
	if len(predicted) != len(observed) {
		return nil, fmt.Errorf(
			"predicted has length of %d, but observed has a length of %d, %w",
			len(predicted), len(observed), ErrDatasetLenMismatch,
		)
	}
	if ts != nil && len(ts) != len(observed) {
		return nil, fmt.Errorf(
			"trend and seasonal has length of %d, but observed has a length of %d, %w",
			len(ts), len(observed), ErrDatasetLenMismatch,
		)
	}

	s := &Set{
		Predicted: make([]float64, len(predicted)),
		Observed:  make([]float64, len(observed)),
	}
	copy(s.Predicted, predicted)
	copy(s.Observed, observed)
	if ts != nil {
		s.TS = make([]float64, len(ts))
		copy(s.TS, ts)
	}
	return s, nil
}

func (s *Set) Copy() *Set {
	c, _ := NewSet(s.Predicted, s.Observed, s.TS)
	return c
}

// Len returns the number of points in the set
func (s *Set) Len() int {
	return len(s.Observed)
}

// Residual returns predicted - observed per point, NaN where either is missing
func (s *Set) Residual() []float64 {
	res := make([]float64, len(s.Observed))
	floats.SubTo(res, s.Predicted, s.Observed)
	return res
}

// Series is a plain slice of values with chainable generators used for synthetic data
type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// SetNaN marks every index in idx as missing
func (s Series) SetNaN(idx ...int) Series {
	for _, i := range idx {
		if i >= 0 && i < len(s) {
			s[i] = math.NaN()
		}
	}
	return s
}

func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateWaveY generates a sine wave over n points with the period expressed in points
func GenerateWaveY(n int, amp, period, order, offset float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		val := amp * math.Sin(2.0*math.Pi*order/period*(float64(i)+offset))
		y = append(y, val)
	}
	return Series(y)
}

// GenerateTrendY generates a line starting at bias and growing by slope per point
func GenerateTrendY(n int, bias, slope float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, bias+slope*float64(i))
	}
	return Series(y)
}

// GenerateNoise generates gaussian noise with the given scale from the provided source
// so that results are reproducible
func GenerateNoise(n int, scale float64, rng *rand.Rand) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rng.NormFloat64()*scale)
	}
	return Series(y)
}
