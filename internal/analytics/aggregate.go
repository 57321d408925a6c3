package analytics

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"spendstats/pkg/records"
)

// ErrNoCategory reports a row that reached aggregation without a category
// value. Cleaning runs before any join, so this cannot happen on a healthy
// run; when it does, the schema contract was violated upstream and the run
// must abort.
var ErrNoCategory = errors.New("row has no category")

// CategoryTotal is one aggregation result row.
type CategoryTotal struct {
	Category string
	// Total is the category's summed amount, rounded half-even to 2dp.
	Total decimal.Decimal
}

// AggregateByCategory groups rows by category and sums their amount,
// rounding each group total half-even to 2 decimal places. Group order is
// the first-seen order of categories in the input, which keeps output
// deterministic for a given row order. Categories with no surviving rows
// never appear; there is no fixed category universe.
func AggregateByCategory(rows []records.Record) ([]CategoryTotal, error) {
	sums := make(map[string]decimal.Decimal)
	var order []string

	for i, r := range rows {
		cat, ok := r.String("category")
		if !ok || cat == "" {
			return nil, fmt.Errorf("aggregate row %d: %w", i, ErrNoCategory)
		}
		amount, ok := r.Decimal("amount")
		if !ok {
			return nil, fmt.Errorf("aggregate row %d: amount missing or untyped", i)
		}
		if _, seen := sums[cat]; !seen {
			order = append(order, cat)
		}
		sums[cat] = sums[cat].Add(amount)
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryTotal{Category: cat, Total: sums[cat].RoundBank(2)})
	}
	return out, nil
}

// TotalSpend sums amount over rows at full precision. The share denominator
// must come from here, not from the rounded per-category totals, so rounding
// error never compounds in the divisor.
func TotalSpend(rows []records.Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		if amount, ok := r.Decimal("amount"); ok {
			total = total.Add(amount)
		}
	}
	return total
}
