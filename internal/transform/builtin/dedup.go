package builtin

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"spendstats/pkg/records"
)

// DeDup collapses records that share the same key tuple, keeping the first
// occurrence. It runs in memory on a single batch and is meant for feeds
// that repeat events (e.g. a purchase log delivered twice).
//
// A record's key is the xxh3 hash of its key fields joined with an unlikely
// separator (nil -> "\x00"). Records missing a key field are left out of the
// de-dup domain and always survive. Run DeDup after Coerce so that values
// hash consistently across types.
type DeDup struct {
	// Keys are the field names that form the business key, e.g. ["purchase_id"].
	Keys []string
}

// Apply returns the input with later duplicates removed, preserving order.
func (d DeDup) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || len(d.Keys) == 0 {
		return in
	}

	seen := make(map[uint64]struct{}, len(in))
	out := in[:0]
	for _, rec := range in {
		key, ok := d.keyOf(rec)
		if !ok {
			out = append(out, rec)
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}

func (d DeDup) keyOf(r records.Record) (uint64, bool) {
	var b strings.Builder
	for _, k := range d.Keys {
		v, ok := r[k]
		if !ok {
			return 0, false
		}
		if b.Len() > 0 {
			b.WriteByte('\x1f')
		}
		switch t := v.(type) {
		case nil:
			b.WriteByte('\x00')
		case string:
			b.WriteString(t)
		default:
			b.WriteString(fmt.Sprint(t))
		}
	}
	return xxh3.HashString(b.String()), true
}
