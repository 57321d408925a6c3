package report

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"spendstats/internal/analytics"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRender(t *testing.T) {
	res := Result{
		CategoryTotals: []analytics.CategoryTotal{
			{Category: "Electronics", Total: dec("300.00")},
			{Category: "Books", Total: dec("60.00")},
		},
		CategoryTotals1825: []analytics.CategoryTotal{
			{Category: "Electronics", Total: dec("100.00")},
		},
		CategoryShares: []analytics.CategoryShare{
			{Category: "Electronics", Total: dec("100.00"), Share: dec("100.00")},
		},
		TopCategories: []analytics.CategoryShare{
			{Category: "Electronics", Total: dec("100.00"), Share: dec("100.00")},
		},
	}

	var b strings.Builder
	if err := Render(&b, res); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"Total purchases by product category:",
		"Purchases by product category, ages 18-25:",
		"Category share of total spend, ages 18-25:",
		"Top 3 categories by spend share, ages 18-25:",
		"total_purchase",
		"total_purchase_18_25",
		"percentage_share",
		"Electronics",
		"300.00",
		"100.00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmptyShares(t *testing.T) {
	var b strings.Builder
	if err := Render(&b, Result{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(b.String(), "(no rows)") {
		t.Fatalf("empty tables must render an explicit marker:\n%s", b.String())
	}
}
