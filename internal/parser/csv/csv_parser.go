// Package csv implements a header-driven CSV parser that turns delimited
// text into records. Column binding is by canonical header name, so source
// column order is irrelevant; cells left empty in the source decode to nil
// so the cleaning stage can drop the row.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"spendstats/pkg/records"
)

// ErrMissingColumn reports that a required column is absent from the header
// row. Callers treat this as a fatal input problem.
var ErrMissingColumn = errors.New("required column missing")

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Options configures the parser. All fields are optional; zero values get
// sensible defaults.
type Options struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// Require lists canonical column names that must appear in the header.
	// Parse fails with ErrMissingColumn when any is absent.
	Require []string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse consumes CSV records from r and returns the parsed rows along with
// the number of rows skipped for parse errors or field-count mismatches.
// The first row is always treated as the header; header names are
// canonicalized (BOM strip, accent fold, snake_case) before binding.
func (p *Parser) Parse(r io.Reader) ([]records.Record, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1 // width enforced against the header after read

	h, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	headers := normalizeHeaders(h)

	if err := checkRequired(headers, p.opt.Require); err != nil {
		return nil, 0, err
	}

	var out []records.Record
	var skipped int

	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Soft-fail this row and continue.
			log.Printf("skipping row %d: %v", line, err)
			skipped++
			continue
		}
		if len(row) != len(headers) {
			log.Printf("skipping row %d: incorrect number of fields (expected %d, got %d)", line, len(headers), len(row))
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[headers[i]] = emptyToNil(val)
		}
		out = append(out, rec)
	}

	return out, skipped, nil
}

func checkRequired(headers, require []string) error {
	have := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		have[h] = struct{}{}
	}
	for _, want := range require {
		if _, ok := have[want]; !ok {
			return fmt.Errorf("%w: %q not in header %v", ErrMissingColumn, want, headers)
		}
	}
	return nil
}

// emptyToNil converts an empty string to nil; all other values pass through.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// normalizeHeaders produces canonical header keys: BOM stripped from the
// first cell, diacritics folded to ASCII, lowercased, separators collapsed
// to underscores.
func normalizeHeaders(h []string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		res[i] = canonicalize(c)
	}
	return res
}

// canonicalize folds a raw header name to a snake_case ASCII key. Accented
// characters are decomposed and their combining marks removed, so e.g.
// "Kategorie zboží" becomes "kategorie_zbozi".
func canonicalize(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}
	ascii = strings.ToLower(ascii)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore && b.Len() > 0 {
				b.WriteRune('_')
				prevUnderscore = true
			}
		default:
			// drop anything else
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
