// Package report holds the run's result tables and renders them as text.
// Rendering is presentation glue around the analytics core; nothing here
// computes, it only formats what the pipeline produced.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"spendstats/internal/analytics"
)

// Result bundles the four output tables of a run.
type Result struct {
	// CategoryTotals is the unfiltered per-category purchase total.
	CategoryTotals []analytics.CategoryTotal

	// CategoryTotals1825 is the same aggregation over the 18-25 age band.
	CategoryTotals1825 []analytics.CategoryTotal

	// CategoryShares carries every banded category with its share of the
	// band's total spend. Empty when the band matched no purchases.
	CategoryShares []analytics.CategoryShare

	// TopCategories is the ranked head of CategoryShares.
	TopCategories []analytics.CategoryShare
}

// Render writes the four result tables to w in the order the run computes
// them. An empty share table renders as an explicit "(no rows)" marker so
// the zero-spend case is visible rather than silently absent.
func Render(w io.Writer, res Result) error {
	if err := renderTotals(w, "Total purchases by product category:", "total_purchase", res.CategoryTotals); err != nil {
		return err
	}
	if err := renderTotals(w, "Purchases by product category, ages 18-25:", "total_purchase_18_25", res.CategoryTotals1825); err != nil {
		return err
	}
	if err := renderShares(w, "Category share of total spend, ages 18-25:", res.CategoryShares); err != nil {
		return err
	}
	return renderShares(w, "Top 3 categories by spend share, ages 18-25:", res.TopCategories)
}

func renderTotals(w io.Writer, title, column string, rows []analytics.CategoryTotal) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "category\t%s\n", column)
	if len(rows) == 0 {
		fmt.Fprintln(tw, "(no rows)\t")
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.Category, r.Total.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func renderShares(w io.Writer, title string, rows []analytics.CategoryShare) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "category\ttotal_purchase_18_25\tpercentage_share")
	if len(rows) == 0 {
		fmt.Fprintln(tw, "(no rows)\t\t")
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Category, r.Total.StringFixed(2), r.Share.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
