package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	errormetrics "github.com/jaciz/error-metrics"
	"github.com/jaciz/error-metrics/plot"
	"github.com/jaciz/error-metrics/series"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("error scoring forecast", zap.String("input", cfg.Input), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = lvl
	return zapCfg.Build()
}

func run(cfg *Config, logger *zap.Logger, w io.Writer) error {
	if cfg.CPUProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.CPUProfile), profile.Quiet).Stop()
	}

	selection, err := cfg.Selection()
	if err != nil {
		return err
	}

	s, err := series.Load(cfg.Input, cfg.Columns)
	if err != nil {
		return fmt.Errorf("unable to load series, %w", err)
	}
	logger.Debug("loaded series",
		zap.String("input", cfg.Input),
		zap.Int("points", s.Len()),
		zap.Bool("has_ts", s.TS != nil),
	)

	report, err := errormetrics.NewReport(selection, s.Predicted, s.Observed, s.TS)
	if err != nil {
		return err
	}
	logger.Info("scored forecast",
		zap.Int("valid_pairs", report.Scores.N),
		zap.Int("points", s.Len()),
		zap.Int("theil_statistics", len(selection)),
	)
	if report.Scores.N < s.Len() {
		logger.Warn("skipped points with missing values", zap.Int("skipped", s.Len()-report.Scores.N))
	}

	switch cfg.Format {
	case FormatJSON:
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("unable to encode report, %w", err)
		}
		if _, err := fmt.Fprintln(w, string(out)); err != nil {
			return err
		}
	default:
		if err := report.TablePrint(w, "", "  "); err != nil {
			return err
		}
	}

	if cfg.Plot != "" {
		if err := plot.RenderFile(cfg.Plot, s, report); err != nil {
			return fmt.Errorf("unable to render plot, %w", err)
		}
		logger.Info("wrote plot", zap.String("path", cfg.Plot))
	}
	return nil
}
