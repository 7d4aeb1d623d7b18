// Package csv loads comma-separated PAN datasets into record tables.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"pancard/dataloader/appcontext"
	"pancard/dataloader/table"
)

// utf8BOM is stripped from the first header cell.
const utf8BOM = "\ufeff"

// ErrFileNotFound is returned when the input path does not exist or is not a file.
var ErrFileNotFound = errors.New("input file not found")

// ErrMalformedCSV is returned when the file is not well-formed CSV.
var ErrMalformedCSV = errors.New("malformed CSV")

var errNoHeader = errors.New("no columns to parse from file")

// FileNotFoundError wraps ErrFileNotFound with the offending path.
func FileNotFoundError(path string) error {
	return fmt.Errorf("%w, %s", ErrFileNotFound, path)
}

// MalformedCSVError wraps ErrMalformedCSV with the path and the underlying cause.
func MalformedCSVError(path string, cause error) error {
	return fmt.Errorf("%w, %s: %w", ErrMalformedCSV, path, cause)
}

// Load reads the file at path. The first line is the header; every following
// line becomes one record, in file order.
func (l *Loader) Load(ctx context.Context, path string) (*table.Table, error) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "Loading data from csv", "filePath", path)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, FileNotFoundError(path)
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, FileNotFoundError(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	tbl, err := l.read(path, file)
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "Loaded csv", "filePath", path, "columns", tbl.Columns, "rows", tbl.Len())
	return tbl, nil
}

func (l *Loader) read(path string, r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = l.comma

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, MalformedCSVError(path, errNoHeader)
		}
		return nil, readError(path, err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	header = dedupeColumns(header)

	tbl := table.New(header)
	for {
		fields, readErr := reader.Read()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, readError(path, readErr)
		}

		rec := make(table.Record, len(header))
		for i, col := range header {
			rec[col] = fields[i]
		}
		tbl.Append(rec)
	}

	return tbl, nil
}

// dedupeColumns renames repeated header names to "name.1", "name.2", ...
// skipping any suffix already taken by another column.
func dedupeColumns(header []string) []string {
	seen := make(map[string]struct{}, len(header))
	for _, col := range header {
		seen[col] = struct{}{}
	}

	out := make([]string, len(header))
	used := make(map[string]int, len(header))
	for i, col := range header {
		n, dup := used[col]
		if !dup {
			used[col] = 0
			out[i] = col
			continue
		}
		name := col
		for {
			n++
			name = fmt.Sprintf("%s.%d", col, n)
			if _, taken := seen[name]; !taken {
				break
			}
		}
		used[col] = n
		seen[name] = struct{}{}
		out[i] = name
	}
	return out
}

// readError classifies a reader failure: structural problems are ErrMalformedCSV,
// anything else is an I/O failure.
func readError(path string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return MalformedCSVError(path, err)
	}
	return fmt.Errorf("failed to read record from CSV in file %s: %w", path, err)
}
