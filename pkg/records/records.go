// Package records defines the row model shared by every pipeline stage.
//
// A Record is one table row: a mapping from canonical column name to a typed
// scalar value. Parsers produce records whose values are raw strings (or nil
// for a missing cell); the coerce transformer rewrites cells into their typed
// form (int64, decimal.Decimal) before any stage does arithmetic on them.
package records

import "github.com/shopspring/decimal"

// Record is a single table row. A nil value means the cell was missing or
// empty in the source.
type Record map[string]any

// Int64 returns the int64 value stored under key. The second return is false
// when the key is absent, nil, or holds a different type.
func (r Record) Int64(key string) (int64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	n, ok := v.(int64)
	return n, ok
}

// Decimal returns the decimal value stored under key. The second return is
// false when the key is absent, nil, or holds a different type.
func (r Record) Decimal(key string) (decimal.Decimal, bool) {
	v, ok := r[key]
	if !ok {
		return decimal.Decimal{}, false
	}
	d, ok := v.(decimal.Decimal)
	return d, ok
}

// String returns the string value stored under key. The second return is
// false when the key is absent, nil, or holds a different type.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Clone returns a shallow copy of the record. Join stages clone so that
// derived rows never alias the input maps.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
