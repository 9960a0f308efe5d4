package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is a single scalar table value. The dynamic type is one of
// string, float64, bool, or nil when the cell is empty or absent.
type Cell interface{}

// Row is one record of a table. Cells are ordered to match the owning
// table's column schema; a short row is treated as padded with nil.
type Row []Cell

// Table is an ordered sequence of rows sharing one column schema.
// Column names are treated as unique for lookup; decoders reject
// duplicate names before a Table is ever constructed.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable creates a table with the given schema and no rows.
func NewTable(columns []string) Table {
	return Table{Columns: columns}
}

// Width returns the number of columns in the schema.
func (t Table) Width() int {
	return len(t.Columns)
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1 when the
// schema has no column with that name.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the schema contains the named column.
func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at the given row and column position.
// Out-of-range positions (including ragged short rows) yield nil.
func (t Table) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

// CellByName returns the value at the given row in the named column.
func (t Table) CellByName(row int, name string) Cell {
	return t.Cell(row, t.ColumnIndex(name))
}

// Clone returns a deep copy of the table. Stages operate on clones so
// no stage mutates its predecessor's output.
func (t Table) Clone() Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = append(Row(nil), r...)
	}
	return out
}

// AppendColumn adds a column to the end of the schema with one value
// per existing row. The values slice must match the row count.
func (t *Table) AppendColumn(name string, values []Cell) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		row := t.Rows[i]
		// Pad ragged rows so the new cell lands at the right position.
		for len(row) < len(t.Columns)-1 {
			row = append(row, nil)
		}
		t.Rows[i] = append(row, values[i])
	}
	return nil
}

// DropColumns removes the named columns from the schema and every row.
// Names not present in the schema are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		if idx := t.ColumnIndex(name); idx >= 0 {
			drop[idx] = true
		}
	}
	if len(drop) == 0 {
		return
	}

	cols := make([]string, 0, len(t.Columns)-len(drop))
	for i, c := range t.Columns {
		if !drop[i] {
			cols = append(cols, c)
		}
	}
	for ri, row := range t.Rows {
		out := make(Row, 0, len(cols))
		for i := 0; i < len(t.Columns); i++ {
			if drop[i] {
				continue
			}
			if i < len(row) {
				out = append(out, row[i])
			} else {
				out = append(out, nil)
			}
		}
		t.Rows[ri] = out
	}
	t.Columns = cols
}

// CellFloat converts a cell to float64. Numeric cells convert directly;
// everything else (text, bool, empty) reports false, mirroring how a
// spreadsheet SUM ignores non-numeric cells.
func CellFloat(c Cell) (float64, bool) {
	switch v := c.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// CellString renders a cell for display and CSV output. Empty cells
// render as the empty string.
func CellString(c Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// CellEmpty reports whether a cell is absent or blank text. Rows whose
// SKU cell is empty are treated as trailing footer rows by the cleaner.
func CellEmpty(c Cell) bool {
	if c == nil {
		return true
	}
	if s, ok := c.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
