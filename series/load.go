package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

var (
	ErrNoColumn      = errors.New("column not found")
	ErrParseValue    = errors.New("unable to parse value")
	ErrUnknownFormat = errors.New("unknown input format")
)

// Columns names the CSV header columns to read. An empty TS skips the trend and seasonal
// column entirely.
type Columns struct {
	Predicted string `yaml:"predicted"`
	Observed  string `yaml:"observed"`
	TS        string `yaml:"ts"`
}

func NewDefaultColumns() Columns {
	return Columns{
		Predicted: "predicted",
		Observed:  "observed",
		TS:        "ts",
	}
}

// Load reads a set from a .csv or .json file
func Load(path string, cols Columns) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(f, cols)
	case ".json":
		return ReadJSON(f)
	default:
		return nil, fmt.Errorf("%s, %w", ext, ErrUnknownFormat)
	}
}

// ReadCSV reads a set from CSV with a header row. Empty cells and NaN become missing values.
// The trend and seasonal column is optional and only read when present in the header.
func ReadCSV(r io.Reader, cols Columns) (*Set, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read header, %w", err)
	}

	predIdx, obsIdx, tsIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case cols.Predicted:
			predIdx = i
		case cols.Observed:
			obsIdx = i
		case cols.TS:
			if cols.TS != "" {
				tsIdx = i
			}
		}
	}
	if predIdx < 0 {
		return nil, fmt.Errorf("predicted column %q, %w", cols.Predicted, ErrNoColumn)
	}
	if obsIdx < 0 {
		return nil, fmt.Errorf("observed column %q, %w", cols.Observed, ErrNoColumn)
	}

	var predicted, observed, ts []float64
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read line %d, %w", line, err)
		}

		p, err := parseValue(record, predIdx)
		if err != nil {
			return nil, fmt.Errorf("line %d predicted, %w", line, err)
		}
		o, err := parseValue(record, obsIdx)
		if err != nil {
			return nil, fmt.Errorf("line %d observed, %w", line, err)
		}
		predicted = append(predicted, p)
		observed = append(observed, o)

		if tsIdx >= 0 {
			v, err := parseValue(record, tsIdx)
			if err != nil {
				return nil, fmt.Errorf("line %d ts, %w", line, err)
			}
			ts = append(ts, v)
		}
	}
	return NewSet(predicted, observed, ts)
}

func parseValue(record []string, idx int) (float64, error) {
	if idx >= len(record) {
		return math.NaN(), nil
	}
	raw := strings.TrimSpace(record[idx])
	if raw == "" || strings.EqualFold(raw, "nan") || strings.EqualFold(raw, "na") {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q, %w", raw, ErrParseValue)
	}
	return v, nil
}

type jsonSet struct {
	Predicted []*float64 `json:"predicted"`
	Observed  []*float64 `json:"observed"`
	TS        []*float64 `json:"ts"`
}

// ReadJSON reads a set from a JSON object with predicted, observed and optional ts arrays.
// null elements become missing values.
func ReadJSON(r io.Reader) (*Set, error) {
	var raw jsonSet
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("unable to decode json, %w", err)
	}
	return NewSet(fromNullable(raw.Predicted), fromNullable(raw.Observed), fromNullable(raw.TS))
}

func fromNullable(vals []*float64) []float64 {
	if vals == nil {
		return nil
	}
	res := make([]float64, len(vals))
	for i, v := range vals {
		if v == nil {
			res[i] = math.NaN()
			continue
		}
		res[i] = *v
	}
	return res
}
