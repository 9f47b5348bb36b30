package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	errormetrics "github.com/jaciz/error-metrics"
	"github.com/jaciz/error-metrics/series"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

var ErrNoInput = errors.New("no input file provided")

// Config controls a single scoring run. Values from a YAML file are loaded over the defaults
// and command line flags are applied last.
type Config struct {
	Input      string         `yaml:"input"`
	Columns    series.Columns `yaml:"columns"`
	Statistics []string       `yaml:"statistics"`
	Format     string         `yaml:"format"`
	LogLevel   string         `yaml:"log_level"`
	Plot       string         `yaml:"plot"`
	CPUProfile string         `yaml:"cpu_profile"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Columns:  series.NewDefaultColumns(),
		Format:   FormatTable,
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML config file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}
	return cfg, nil
}

// Validate checks every field that can be checked before reading the input
func (c *Config) Validate() error {
	if c.Input == "" {
		return ErrNoInput
	}
	if c.Columns.Predicted == "" || c.Columns.Observed == "" {
		return fmt.Errorf("predicted and observed column names cannot be empty")
	}
	if c.Format != FormatTable && c.Format != FormatJSON {
		return fmt.Errorf("unknown output format %q, expected %s or %s", c.Format, FormatTable, FormatJSON)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if _, err := errormetrics.ParseStatistics(c.Statistics...); err != nil {
		return fmt.Errorf("invalid statistics: %w", err)
	}
	return nil
}

// Selection returns the parsed Theil statistics to compute
func (c *Config) Selection() ([]errormetrics.Statistic, error) {
	return errormetrics.ParseStatistics(c.Statistics...)
}

// parseConfig builds the run configuration from command line arguments. A -config file is
// loaded first and any flag explicitly set on the command line overrides it.
func parseConfig(args []string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("errmetrics", flag.ContinueOnError)
	fs.SetOutput(output)

	configPath := fs.String("config", "", "path to a YAML config file")
	input := fs.String("input", "", "path to a .csv or .json file with predicted, observed and optional ts values")
	stats := fs.String("stats", "", "comma separated theil statistics to compute: u1, u2, bias, var, noise, stlcomp or all")
	format := fs.String("format", FormatTable, "output format: table or json")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn or error")
	plotPath := fs.String("plot", "", "write an html chart of the series to this path")
	cpuProfile := fs.String("cpuprofile", "", "write a cpu profile into this directory")
	predCol := fs.String("predicted-column", "", "csv column holding predicted values")
	obsCol := fs.String("observed-column", "", "csv column holding observed values")
	tsCol := fs.String("ts-column", "", "csv column holding trend and seasonal values")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := NewDefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "stats":
			cfg.Statistics = splitList(*stats)
		case "format":
			cfg.Format = *format
		case "log-level":
			cfg.LogLevel = *logLevel
		case "plot":
			cfg.Plot = *plotPath
		case "cpuprofile":
			cfg.CPUProfile = *cpuProfile
		case "predicted-column":
			cfg.Columns.Predicted = *predCol
		case "observed-column":
			cfg.Columns.Observed = *obsCol
		case "ts-column":
			cfg.Columns.TS = *tsCol
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var res []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		res = append(res, item)
	}
	return res
}
