// Package normalize cleans the values of a record table column in place:
// surrounding whitespace is removed and letters are uppercased.
//
// Missing cells (nil) are treated as the empty string. Cells holding anything
// other than a string fail the whole column with ErrUnsupportedValue and leave
// the table untouched.
package normalize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"pancard/dataloader/appcontext"
	"pancard/dataloader/table"
)

// DefaultColumn is the column holding PAN values.
const DefaultColumn = "Pan_Numbers"

// ErrColumnNotFound is returned when the column is not part of the table header.
var ErrColumnNotFound = errors.New("column not found")

// ErrUnsupportedValue is returned for cells that are neither strings nor missing.
var ErrUnsupportedValue = errors.New("unsupported value type")

// ColumnNotFoundError wraps ErrColumnNotFound with the column name.
func ColumnNotFoundError(column string) error {
	return fmt.Errorf("%w, %s", ErrColumnNotFound, column)
}

// UnsupportedValueError wraps ErrUnsupportedValue with the row position and value type.
func UnsupportedValueError(row int, column string, v any) error {
	return fmt.Errorf("%w, row %d column %s: %T", ErrUnsupportedValue, row, column, v)
}

// Normalizer trims and uppercases column values.
type Normalizer struct {
	foldWidth bool
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithWidthFolding applies NFKC before trimming, so full-width and other
// compatibility characters fold to their plain forms.
func WithWidthFolding() Option {
	return func(n *Normalizer) {
		n.foldWidth = true
	}
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Value normalizes a single string. It is idempotent.
func (n *Normalizer) Value(s string) string {
	return n.apply(cases.Upper(language.Und), s)
}

// Column normalizes every value of column in t, writing results back to the
// same rows. Either every row is rewritten or none is.
func (n *Normalizer) Column(ctx context.Context, t *table.Table, column string) (*Stats, error) {
	logger := appcontext.LoggerFromContext(ctx)

	if !t.HasColumn(column) {
		return nil, ColumnNotFoundError(column)
	}

	// A Caser keeps state between calls and must not be shared across goroutines.
	upper := cases.Upper(language.Und)
	stats := &Stats{Column: column, Rows: t.Len()}
	values := make([]string, t.Len())

	for i, rec := range t.Rows {
		var raw string
		switch v := rec[column].(type) {
		case nil:
			stats.Missing++
		case string:
			raw = v
		default:
			return nil, UnsupportedValueError(i, column, v)
		}

		values[i] = n.apply(upper, raw)
		if values[i] != rec[column] {
			stats.Changed++
		}
	}

	for i, rec := range t.Rows {
		rec[column] = values[i]
	}

	logger.DebugContext(ctx, "Normalized column", "column", column, "rows", stats.Rows, "changed", stats.Changed)
	return stats, nil
}

func (n *Normalizer) apply(upper cases.Caser, s string) string {
	if n.foldWidth {
		s = norm.NFKC.String(s)
	}
	return upper.String(strings.TrimSpace(s))
}
