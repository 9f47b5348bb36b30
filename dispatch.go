package errormetrics

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-json"
)

// Statistic names one of the Theil statistics that TheilStats can compute
type Statistic string

const (
	U1      Statistic = "u1"
	U2      Statistic = "u2"
	Bias    Statistic = "bias"
	Var     Statistic = "var"
	Noise   Statistic = "noise"
	STLComp Statistic = "stlcomp"

	// All requests every Theil statistic
	All Statistic = "all"
)

// TheilStatistics lists every computable Theil statistic in canonical order
var TheilStatistics = []Statistic{U1, U2, Bias, Var, Noise, STLComp}

type theilFunc func(predicted, observed, ts []float64) (float64, error)

var theilFuncs = map[Statistic]theilFunc{
	U1:      func(p, o, _ []float64) (float64, error) { return TheilU1(p, o) },
	U2:      func(p, o, _ []float64) (float64, error) { return TheilU2(p, o) },
	Bias:    func(p, o, _ []float64) (float64, error) { return TheilBias(p, o) },
	Var:     func(p, o, _ []float64) (float64, error) { return TheilVar(p, o) },
	Noise:   func(p, o, _ []float64) (float64, error) { return TheilNoise(p, o) },
	STLComp: TheilSTLComp,
}

// Valid reports whether s is a known statistic name, including All. Case and surrounding
// whitespace are ignored.
func (s Statistic) Valid() bool {
	s = s.normalize()
	if s == All {
		return true
	}
	_, exists := theilFuncs[s]
	return exists
}

func (s Statistic) normalize() Statistic {
	return Statistic(strings.ToLower(strings.TrimSpace(string(s))))
}

func validOptions() []Statistic {
	options := make([]Statistic, 0, len(TheilStatistics)+1)
	options = append(options, TheilStatistics...)
	return append(options, All)
}

// InvalidStatisticError is returned when a requested statistic is unknown or nothing was
// requested at all. It matches ErrInvalidStatistic with errors.Is.
type InvalidStatisticError struct {
	Value   string
	Options []Statistic
}

func (e *InvalidStatisticError) Error() string {
	names := make([]string, 0, len(e.Options))
	for _, opt := range e.Options {
		names = append(names, string(opt))
	}
	if e.Value == "" {
		return fmt.Sprintf("no theil statistic requested, valid options are %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("theil statistic %q not found, valid options are %s", e.Value, strings.Join(names, ", "))
}

func (e *InvalidStatisticError) Unwrap() error {
	return ErrInvalidStatistic
}

// ParseStatistics converts raw names into statistics, failing on the first unknown name.
// Surrounding whitespace and case are ignored.
func ParseStatistics(names ...string) ([]Statistic, error) {
	stats := make([]Statistic, 0, len(names))
	for _, name := range names {
		s := Statistic(name).normalize()
		if !s.Valid() {
			return nil, &InvalidStatisticError{Value: name, Options: validOptions()}
		}
		stats = append(stats, s)
	}
	return stats, nil
}

// resolveSelection validates every requested name, expands All and drops duplicates while
// keeping the order of first appearance
func resolveSelection(selection []Statistic) ([]Statistic, error) {
	if len(selection) == 0 {
		return nil, &InvalidStatisticError{Options: validOptions()}
	}
	normalized := make([]Statistic, 0, len(selection))
	for _, s := range selection {
		if !s.Valid() {
			return nil, &InvalidStatisticError{Value: string(s), Options: validOptions()}
		}
		normalized = append(normalized, s.normalize())
	}
	if slices.Contains(normalized, All) {
		return slices.Clone(TheilStatistics), nil
	}

	resolved := make([]Statistic, 0, len(normalized))
	for _, s := range normalized {
		if slices.Contains(resolved, s) {
			continue
		}
		resolved = append(resolved, s)
	}
	return resolved, nil
}

// TheilStats computes the requested Theil statistics. A single statistic is requested with a
// one element selection and All expands to every statistic. ts is only required when stlcomp
// is part of the resolved selection. Either every requested value is returned or an error.
func TheilStats(selection []Statistic, predicted, observed, ts []float64) (*TheilResults, error) {
	resolved, err := resolveSelection(selection)
	if err != nil {
		return nil, err
	}
	if ts == nil && slices.Contains(resolved, STLComp) {
		return nil, fmt.Errorf("stlcomp requires trend and seasonal values, %w", ErrMissingArgument)
	}

	res := &TheilResults{values: make([]TheilValue, 0, len(resolved))}
	for _, s := range resolved {
		val, err := theilFuncs[s](predicted, observed, ts)
		if err != nil {
			return nil, fmt.Errorf("unable to compute theil %s, %w", s, err)
		}
		res.values = append(res.values, TheilValue{Statistic: s, Value: val})
	}
	return res, nil
}

// TheilValue is a single computed statistic
type TheilValue struct {
	Statistic Statistic `json:"statistic"`
	Value     float64   `json:"value"`
}

// TheilResults holds computed statistics in the order they were requested
type TheilResults struct {
	values []TheilValue
}

// Len returns the number of statistics
func (r *TheilResults) Len() int {
	return len(r.values)
}

// Get returns the value of a statistic and whether it was computed
func (r *TheilResults) Get(s Statistic) (float64, bool) {
	for _, v := range r.values {
		if v.Statistic == s {
			return v.Value, true
		}
	}
	return 0, false
}

// Names returns the computed statistics in order
func (r *TheilResults) Names() []Statistic {
	names := make([]Statistic, 0, len(r.values))
	for _, v := range r.values {
		names = append(names, v.Statistic)
	}
	return names
}

// Values returns a copy of the ordered statistic values
func (r *TheilResults) Values() []TheilValue {
	return slices.Clone(r.values)
}

// Map returns the statistics keyed by name
func (r *TheilResults) Map() map[Statistic]float64 {
	m := make(map[Statistic]float64, len(r.values))
	for _, v := range r.values {
		m[v.Statistic] = v.Value
	}
	return m
}

// MarshalJSON encodes the results as an object keeping the requested order. Non-finite
// values are written as null.
func (r *TheilResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range r.values {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(v.Statistic))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(jsonFloat(v.Value))
		if err != nil {
			return nil, fmt.Errorf("unable to encode theil %s, %w", v.Statistic, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
