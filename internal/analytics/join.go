// Package analytics implements the analytical core of the pipeline: the
// purchase/product and purchase/user joins, the derived amount column,
// category aggregation, and percentage-share ranking.
//
// Every function is a pure transformation: inputs are never mutated and each
// call returns freshly allocated rows. All money arithmetic uses
// decimal.Decimal; the single rounding rule across the package is half-even
// (banker's) rounding to 2 decimal places, applied only at aggregation and
// share computation, never at derivation.
package analytics

import (
	"github.com/shopspring/decimal"

	"spendstats/pkg/records"
)

// JoinPurchaseProduct inner-joins purchases to products on product_id and
// derives amount = price * quantity at full precision. Purchases whose
// product_id has no match are dropped, not errored: unmatched keys are a
// filtering policy. On column-name collision the purchase value wins.
func JoinPurchaseProduct(purchases, products []records.Record) []records.Record {
	byID := make(map[int64]records.Record, len(products))
	for _, p := range products {
		id, ok := p.Int64("product_id")
		if !ok {
			continue
		}
		byID[id] = p
	}

	var out []records.Record
	for _, pur := range purchases {
		id, ok := pur.Int64("product_id")
		if !ok {
			continue
		}
		prod, ok := byID[id]
		if !ok {
			continue
		}

		row := pur.Clone()
		for k, v := range prod {
			if _, exists := row[k]; !exists {
				row[k] = v
			}
		}

		price, okP := prod.Decimal("price")
		qty, okQ := pur.Int64("quantity")
		if !okP || !okQ {
			continue
		}
		row["amount"] = price.Mul(decimal.NewFromInt(qty))
		out = append(out, row)
	}
	return out
}

// JoinPurchaseUser inner-joins enriched purchase rows to users on user_id,
// attaching the user's attributes (age). Rows whose user_id has no match
// are dropped under the same policy as JoinPurchaseProduct.
func JoinPurchaseUser(enriched, users []records.Record) []records.Record {
	byID := make(map[int64]records.Record, len(users))
	for _, u := range users {
		id, ok := u.Int64("user_id")
		if !ok {
			continue
		}
		byID[id] = u
	}

	var out []records.Record
	for _, row := range enriched {
		id, ok := row.Int64("user_id")
		if !ok {
			continue
		}
		user, ok := byID[id]
		if !ok {
			continue
		}
		joined := row.Clone()
		for k, v := range user {
			if _, exists := joined[k]; !exists {
				joined[k] = v
			}
		}
		out = append(out, joined)
	}
	return out
}

// FilterAge returns the rows whose age lies in [lo, hi], both inclusive.
// Rows without a typed age are excluded.
func FilterAge(rows []records.Record, lo, hi int64) []records.Record {
	var out []records.Record
	for _, r := range rows {
		age, ok := r.Int64("age")
		if !ok {
			continue
		}
		if age >= lo && age <= hi {
			out = append(out, r)
		}
	}
	return out
}
