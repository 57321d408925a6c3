// Command spendstats runs the purchase-pattern analytics batch: it loads the
// product, purchase, and user tables from their default locations, computes
// the per-category totals and the 18-25 share ranking, and prints the four
// result tables to stdout.
//
// There are no flags and no environment variables; an optional
// spendstats.json in the working directory overrides the defaults.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"spendstats/internal/config"
	"spendstats/internal/metrics"
	"spendstats/internal/pipeline"
	"spendstats/internal/report"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		logger.WithError(err).Error("load config")
		os.Exit(1)
	}

	issues := config.Validate(cfg)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		logger.Error("configuration is invalid")
		os.Exit(1)
	}

	res, _, err := pipeline.Run(context.Background(), cfg, logger)
	if err != nil {
		logger.WithError(err).Error("run failed")
		os.Exit(1)
	}
	if err := report.Render(os.Stdout, res); err != nil {
		logger.WithError(err).Error("render results")
		os.Exit(1)
	}

	if err := metrics.Flush(); err != nil {
		logger.WithError(err).Warn("metrics flush")
	}
}
