// Package pipeline wires the analytics run end-to-end: load and clean the
// three input tables, join and enrich, aggregate, and rank. It depends only
// on the datasource/parser/transform/analytics packages and never touches
// presentation.
//
// The run is a one-shot batch over immutable snapshots. The three tables
// are independent until the join stage, so load+clean fans out across an
// errgroup; every stage after that is a pure function, so correctness never
// depends on scheduling. All resources acquired for a table are released
// inside the per-table function on every path.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"spendstats/internal/analytics"
	"spendstats/internal/config"
	"spendstats/internal/datasource"
	"spendstats/internal/datasource/file"
	"spendstats/internal/metrics"
	csvparser "spendstats/internal/parser/csv"
	"spendstats/internal/report"
	"spendstats/internal/schema"
	"spendstats/internal/transform"
	"spendstats/internal/transform/builtin"
	"spendstats/pkg/records"
)

// TableStats counts what happened to one input table before the joins.
type TableStats struct {
	Loaded       int // rows parsed from the source
	ParseSkipped int // malformed rows skipped by the parser
	CleanDropped int // rows removed for missing/unparsable cells
}

// Stats summarizes a full run for logging and tests.
type Stats struct {
	Products  TableStats
	Purchases TableStats
	Users     TableStats

	DedupDropped       int // duplicate purchases removed (when enabled)
	ProductJoinDropped int // purchases without a matching product
	UserJoinDropped    int // purchases without a matching user
	Categories         int // distinct categories, unfiltered
	CategoriesInBand   int // distinct categories in the age band
}

// sourceFor is a test seam; production always reads local files.
var sourceFor = func(path string) datasource.Source {
	return file.NewLocal(path)
}

// Run executes the whole computation and returns the four result tables.
// Any error aborts the run and is wrapped with the stage and table that
// produced it; partial results are never returned.
func Run(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (report.Result, Stats, error) {
	var (
		res   report.Result
		stats Stats
	)

	// Load and clean the three tables concurrently. Each table is
	// independent; a failure on any of them cancels the others.
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	var products, purchases, users []records.Record
	g.Go(func() (err error) {
		products, stats.Products, err = loadTable(gctx, cfg, cfg.ProductsPath, schema.Products, log)
		return err
	})
	g.Go(func() (err error) {
		purchases, stats.Purchases, err = loadTable(gctx, cfg, cfg.PurchasesPath, schema.Purchases, log)
		return err
	})
	g.Go(func() (err error) {
		users, stats.Users, err = loadTable(gctx, cfg, cfg.UsersPath, schema.Users, log)
		return err
	})
	err := g.Wait()
	metrics.RecordStage("load_clean", err, time.Since(start))
	if err != nil {
		return res, stats, err
	}

	if cfg.DedupePurchases {
		before := len(purchases)
		purchases = builtin.DeDup{Keys: []string{"purchase_id"}}.Apply(purchases)
		stats.DedupDropped = before - len(purchases)
		metrics.RecordRows("purchases", "dedup_dropped", int64(stats.DedupDropped))
	}

	// Join purchases to products and derive amount; then attach users.
	// Unmatched rows are dropped by policy, counted, never errored.
	start = time.Now()
	enriched := analytics.JoinPurchaseProduct(purchases, products)
	stats.ProductJoinDropped = len(purchases) - len(enriched)
	metrics.RecordRows("purchases", "join_dropped", int64(stats.ProductJoinDropped))

	withUsers := analytics.JoinPurchaseUser(enriched, users)
	stats.UserJoinDropped = len(enriched) - len(withUsers)
	metrics.RecordRows("purchases", "user_join_dropped", int64(stats.UserJoinDropped))
	metrics.RecordStage("join", nil, time.Since(start))

	banded := analytics.FilterAge(withUsers, cfg.AgeMin, cfg.AgeMax)

	// Aggregate twice: all enriched purchases, then the age band only.
	start = time.Now()
	totals, err := analytics.AggregateByCategory(enriched)
	if err == nil {
		res.CategoryTotals = totals
		res.CategoryTotals1825, err = analytics.AggregateByCategory(banded)
	}
	metrics.RecordStage("aggregate", err, time.Since(start))
	if err != nil {
		return res, stats, fmt.Errorf("aggregate: %w", err)
	}
	stats.Categories = len(res.CategoryTotals)
	stats.CategoriesInBand = len(res.CategoryTotals1825)

	// Rank against the unrounded band total. A zero total yields empty
	// share tables by policy (nothing in the band), not an error.
	bandTotal := analytics.TotalSpend(banded)
	res.CategoryShares = analytics.Shares(res.CategoryTotals1825, bandTotal)
	res.TopCategories = analytics.TopN(res.CategoryShares, cfg.TopN)

	log.WithFields(logrus.Fields{
		"purchases":          stats.Purchases.Loaded,
		"clean_dropped":      stats.Purchases.CleanDropped,
		"join_dropped":       stats.ProductJoinDropped,
		"user_join_dropped":  stats.UserJoinDropped,
		"categories":         stats.Categories,
		"categories_in_band": stats.CategoriesInBand,
		"band_total":         bandTotal.String(),
	}).Info("run complete")

	return res, stats, nil
}

// loadTable opens one source, parses it, coerces cells to their contract
// types, and drops rows with any missing contract value. Cleaning happens
// before any join so a dirty row can never match (or mismatch) on a
// missing key.
func loadTable(ctx context.Context, cfg config.Config, path string, contract schema.Contract, log logrus.FieldLogger) ([]records.Record, TableStats, error) {
	var ts TableStats

	rc, err := sourceFor(path).Open(ctx)
	if err != nil {
		return nil, ts, fmt.Errorf("load %s: %w", contract.Name, err)
	}
	defer rc.Close()

	p := csvparser.NewParser(csvparser.Options{
		Comma:     cfg.Comma(),
		TrimSpace: true,
		Require:   contract.Columns(),
	})
	rows, skipped, err := p.Parse(rc)
	if err != nil {
		return nil, ts, fmt.Errorf("parse %s: %w", contract.Name, err)
	}
	ts.Loaded = len(rows)
	ts.ParseSkipped = skipped
	metrics.RecordRows(contract.Name, "loaded", int64(ts.Loaded))
	metrics.RecordRows(contract.Name, "parse_skipped", int64(skipped))

	chain := transform.Chain{
		builtin.Coerce{Contract: contract},
		builtin.DropMissing{Fields: contract.Columns()},
	}
	clean := chain.Apply(rows)
	ts.CleanDropped = ts.Loaded - len(clean)
	metrics.RecordRows(contract.Name, "clean_dropped", int64(ts.CleanDropped))

	log.WithFields(logrus.Fields{
		"table":         contract.Name,
		"rows":          ts.Loaded,
		"parse_skipped": ts.ParseSkipped,
		"clean_dropped": ts.CleanDropped,
	}).Info("table loaded")

	return clean, ts, nil
}
