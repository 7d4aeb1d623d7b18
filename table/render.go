package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

// missingCell is printed for nil cells.
const missingCell = "<NA>"

// Render writes the first n rows of t to w as a bordered grid with a leading row index.
func Render(w io.Writer, t *Table, n int) error {
	headers := make([]string, 0, len(t.Columns)+1)
	headers = append(headers, "")
	headers = append(headers, t.Columns...)

	head := t.Head(n)
	rows := make([][]string, 0, len(head))
	for i, rec := range head {
		row := make([]string, 0, len(headers))
		row = append(row, strconv.Itoa(i))
		for _, col := range t.Columns {
			row = append(row, formatCell(rec[col]))
		}
		rows = append(rows, row)
	}

	grid := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)

	if _, err := fmt.Fprintln(w, grid.Render()); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}

	return nil
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return missingCell
	case string:
		// Tabs and other control characters break the grid's width
		// measurement, so such cells are shown escaped.
		if strings.ContainsFunc(val, unicode.IsControl) {
			return strconv.Quote(val)
		}
		return val
	default:
		return fmt.Sprint(val)
	}
}
