// Package datasource abstracts where input tables are read from.
package datasource

import (
	"context"
	"io"
)

// Source yields a readable stream for one input table. Implementations own
// nothing beyond the returned ReadCloser; callers must close it.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
