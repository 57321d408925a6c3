package builtin

import (
	"strconv"

	"github.com/shopspring/decimal"

	"spendstats/internal/schema"
	"spendstats/pkg/records"
)

// Coerce parses raw string cells into their typed form according to a table
// contract: "int" cells become int64, "decimal" cells become
// decimal.Decimal, "string" cells stay as-is. An unparsable cell is set to
// nil so that a following DropMissing removes the row (fail-soft).
//
// Cells outside the contract are left untouched; contract columns absent
// from a record stay absent.
type Coerce struct {
	Contract schema.Contract
}

// Apply coerces records in place and returns the same slice.
func (c Coerce) Apply(in []records.Record) []records.Record {
	if len(c.Contract.Fields) == 0 {
		return in
	}
	for _, r := range in {
		for _, f := range c.Contract.Fields {
			v, ok := r[f.Name]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue // already typed
			}
			switch f.Kind {
			case schema.KindInt:
				if n, err := strconv.ParseInt(s, 10, 64); err == nil {
					r[f.Name] = n
				} else {
					r[f.Name] = nil
				}
			case schema.KindDecimal:
				if d, err := decimal.NewFromString(s); err == nil {
					r[f.Name] = d
				} else {
					r[f.Name] = nil
				}
			case schema.KindString:
				// already string
			}
		}
	}
	return in
}
