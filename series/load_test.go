package series

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertFloatSliceEqualWithNaN(t *testing.T, expected, actual []float64) {
	t.Helper()
	if len(expected) != len(actual) {
		assert.Failf(t, "length mismatch", "expected len=%d, got len=%d", len(expected), len(actual))
		return
	}
	for i := range expected {
		e, a := expected[i], actual[i]
		if math.IsNaN(e) && math.IsNaN(a) {
			continue
		}
		assert.Equalf(t, e, a, "index %d mismatch", i)
	}
}

func TestReadCSV(t *testing.T) {
	nan := math.NaN()

	testData := map[string]struct {
		input     string
		cols      Columns
		predicted []float64
		observed  []float64
		ts        []float64
		err       error
	}{
		"default columns": {
			input:     "observed,predicted,ts\n1,2,1.5\n3,4,3\n",
			cols:      NewDefaultColumns(),
			predicted: []float64{2, 4},
			observed:  []float64{1, 3},
			ts:        []float64{1.5, 3},
		},
		"missing cells": {
			input:     "predicted,observed\n2,\nNaN,3\n5, 6\n7\n",
			cols:      NewDefaultColumns(),
			predicted: []float64{2, nan, 5, 7},
			observed:  []float64{nan, 3, 6, nan},
		},
		"custom columns ignore ts": {
			input:     "yhat,y,ts\n2,1,0\n",
			cols:      Columns{Predicted: "yhat", Observed: "y"},
			predicted: []float64{2},
			observed:  []float64{1},
		},
		"no observed column": {
			input: "predicted,actual\n1,2\n",
			cols:  NewDefaultColumns(),
			err:   ErrNoColumn,
		},
		"bad value": {
			input: "predicted,observed\n1,abc\n",
			cols:  NewDefaultColumns(),
			err:   ErrParseValue,
		},
		"header only": {
			input: "predicted,observed\n",
			cols:  NewDefaultColumns(),
			err:   ErrEmptySeries,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			s, err := ReadCSV(strings.NewReader(td.input), td.cols)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assertFloatSliceEqualWithNaN(t, td.predicted, s.Predicted)
			assertFloatSliceEqualWithNaN(t, td.observed, s.Observed)
			if td.ts == nil {
				assert.Nil(t, s.TS)
				return
			}
			assertFloatSliceEqualWithNaN(t, td.ts, s.TS)
		})
	}
}

func TestReadJSON(t *testing.T) {
	testData := map[string]struct {
		input     string
		predicted []float64
		observed  []float64
		ts        []float64
		err       error
	}{
		"with nulls": {
			input:     `{"predicted":[1,null,3],"observed":[1,2,3]}`,
			predicted: []float64{1, math.NaN(), 3},
			observed:  []float64{1, 2, 3},
		},
		"with ts": {
			input:     `{"predicted":[1],"observed":[2],"ts":[1.5]}`,
			predicted: []float64{1},
			observed:  []float64{2},
			ts:        []float64{1.5},
		},
		"length mismatch": {
			input: `{"predicted":[1,2],"observed":[2]}`,
			err:   ErrDatasetLenMismatch,
		},
		"empty": {
			input: `{}`,
			err:   ErrEmptySeries,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			s, err := ReadJSON(strings.NewReader(td.input))
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assertFloatSliceEqualWithNaN(t, td.predicted, s.Predicted)
			assertFloatSliceEqualWithNaN(t, td.observed, s.Observed)
			assertFloatSliceEqualWithNaN(t, td.ts, s.TS)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "scores.csv")
	require.Nil(t, os.WriteFile(csvPath, []byte("predicted,observed\n1,2\n"), 0o644))
	s, err := Load(csvPath, NewDefaultColumns())
	require.Nil(t, err)
	assert.Equal(t, []float64{1}, s.Predicted)

	jsonPath := filepath.Join(dir, "scores.JSON")
	require.Nil(t, os.WriteFile(jsonPath, []byte(`{"predicted":[3],"observed":[4]}`), 0o644))
	s, err = Load(jsonPath, NewDefaultColumns())
	require.Nil(t, err)
	assert.Equal(t, []float64{4}, s.Observed)

	txtPath := filepath.Join(dir, "scores.txt")
	require.Nil(t, os.WriteFile(txtPath, []byte("1 2"), 0o644))
	_, err = Load(txtPath, NewDefaultColumns())
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(dir, "missing.csv"), NewDefaultColumns())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
