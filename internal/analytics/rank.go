package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryShare is one ranking result row: a category's rounded total within
// the age band and its percentage of the band's overall spend.
type CategoryShare struct {
	Category string
	Total    decimal.Decimal
	// Share is total/overall*100, rounded half-even to 2dp.
	Share decimal.Decimal
}

// Shares computes each category's percentage share of total. The numerator
// is the category's rounded band total; the denominator must be the
// full-precision TotalSpend of the same row set.
//
// When total is zero the share is undefined (the age band matched nothing);
// the documented policy is to return an empty slice rather than divide.
// Callers therefore never see NaN, Inf, or a division error.
func Shares(totals []CategoryTotal, total decimal.Decimal) []CategoryShare {
	if total.IsZero() {
		return nil
	}
	hundred := decimal.NewFromInt(100)
	out := make([]CategoryShare, 0, len(totals))
	for _, t := range totals {
		share := t.Total.Div(total).Mul(hundred).RoundBank(2)
		out = append(out, CategoryShare{Category: t.Category, Total: t.Total, Share: share})
	}
	return out
}

// TopN returns the n categories with the highest share, descending. The
// sort is stable, so categories with equal shares keep their incoming
// (first-seen) order. When fewer than n categories exist, all are returned.
func TopN(shares []CategoryShare, n int) []CategoryShare {
	out := make([]CategoryShare, len(shares))
	copy(out, shares)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Share.GreaterThan(out[j].Share)
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
