// Package builtin contains the reusable transformers the pipeline is
// assembled from.
package builtin

import "spendstats/pkg/records"

// DropMissing removes any record missing a value for one of the listed
// fields. This is the cleaning stage: it never imputes, it only drops.
// Applying it to an already-clean batch returns the batch unchanged.
type DropMissing struct {
	Fields []string
}

// Apply returns a filtered slice containing only records that have all
// listed fields present and non-empty. The input slice is resliced in
// place and surviving records keep their order.
func (d DropMissing) Apply(in []records.Record) []records.Record {
	out := in[:0]
	for _, rec := range in {
		ok := true
		for _, f := range d.Fields {
			v, exists := rec[f]
			if !exists || v == nil || v == "" {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out
}
