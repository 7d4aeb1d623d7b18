package table

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPanTable(values ...any) *Table {
	t := New([]string{"Pan_Numbers"})
	for _, v := range values {
		t.Append(Record{"Pan_Numbers": v})
	}
	return t
}

func TestTable_Head(t *testing.T) {
	tbl := newPanTable("a", "b", "c")

	assert.Len(t, tbl.Head(2), 2)
	assert.Len(t, tbl.Head(10), 3)
	assert.Empty(t, tbl.Head(0))
	assert.Empty(t, tbl.Head(-1))
	assert.Equal(t, "a", tbl.Head(1)[0]["Pan_Numbers"])
}

func TestTable_LenAndHasColumn(t *testing.T) {
	tbl := newPanTable("a", nil)

	assert.Equal(t, 2, tbl.Len())
	assert.True(t, tbl.HasColumn("Pan_Numbers"))
	assert.False(t, tbl.HasColumn("pan_numbers"))
}

func TestTable_Value(t *testing.T) {
	tbl := newPanTable("abc", nil)

	v, ok := tbl.Value(0, "Pan_Numbers")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	_, ok = tbl.Value(1, "Pan_Numbers")
	assert.False(t, ok)

	_, ok = tbl.Value(0, "Other")
	assert.False(t, ok)
}

func TestNew_CopiesHeader(t *testing.T) {
	header := []string{"Pan_Numbers"}
	tbl := New(header)
	header[0] = "changed"

	assert.Equal(t, []string{"Pan_Numbers"}, tbl.Columns)
}

func TestRender(t *testing.T) {
	tbl := newPanTable("ABCDE1234F", nil, 42)
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, tbl, 2))

	out := buf.String()
	assert.Contains(t, out, "Pan_Numbers")
	assert.Contains(t, out, "ABCDE1234F")
	assert.Contains(t, out, missingCell)
	assert.NotContains(t, out, "42")
}

func TestRender_EmptyTable(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, New([]string{"Pan_Numbers"}), DefaultPreviewRows))
	assert.Contains(t, buf.String(), "Pan_Numbers")
}

func TestRender_ControlCharactersStayVisible(t *testing.T) {
	tbl := newPanTable("\tabcd1234e  ", "")
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, tbl, DefaultPreviewRows))

	out := buf.String()
	assert.Contains(t, out, "abcd1234e")
	assert.Contains(t, out, `"\tabcd1234e  "`)
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, missingCell},
		{" abcd1234e ", " abcd1234e "},
		{"ab\tcd", `"ab\tcd"`},
		{"line\nbreak", `"line\nbreak"`},
		{int32(7), "7"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCell(tt.in))
	}
}
