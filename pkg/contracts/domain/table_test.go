package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Clone(t *testing.T) {
	orig := Table{
		Columns: []string{"SKU", "Qty"},
		Rows:    []Row{{"A", 10.0}, {"B", 20.0}},
	}

	clone := orig.Clone()
	clone.Columns[0] = "changed"
	clone.Rows[0][0] = "changed"
	clone.Rows = append(clone.Rows, Row{"C", 30.0})

	assert.Equal(t, "SKU", orig.Columns[0])
	assert.Equal(t, "A", orig.Rows[0][0])
	assert.Equal(t, 2, orig.Len())
}

func TestTable_AppendColumn(t *testing.T) {
	table := Table{
		Columns: []string{"SKU", "Qty"},
		Rows:    []Row{{"A", 10.0}, {"B"}}, // second row is ragged
	}

	err := table.AppendColumn("Total", []Cell{20.0, 30.0})
	require.NoError(t, err)

	assert.Equal(t, []string{"SKU", "Qty", "Total"}, table.Columns)
	assert.Equal(t, 20.0, table.Cell(0, 2))
	// The ragged row is padded so the new value lands at position 2.
	assert.Nil(t, table.Cell(1, 1))
	assert.Equal(t, 30.0, table.Cell(1, 2))

	err = table.AppendColumn("Bad", []Cell{1.0})
	assert.Error(t, err)
}

func TestTable_DropColumns(t *testing.T) {
	table := Table{
		Columns: []string{"A", "B", "C", "D"},
		Rows:    []Row{{1.0, 2.0, 3.0, 4.0}, {5.0, 6.0}},
	}

	table.DropColumns("B", "D", "NotThere")

	assert.Equal(t, []string{"A", "C"}, table.Columns)
	assert.Equal(t, Row{1.0, 3.0}, table.Rows[0])
	// Missing trailing cells come back as nil.
	assert.Equal(t, Row{5.0, nil}, table.Rows[1])
}

func TestTable_ColumnIndex(t *testing.T) {
	table := NewTable([]string{"SKU", "Qty"})

	assert.Equal(t, 0, table.ColumnIndex("SKU"))
	assert.Equal(t, 1, table.ColumnIndex("Qty"))
	assert.Equal(t, -1, table.ColumnIndex("missing"))
	assert.True(t, table.HasColumn("Qty"))
	assert.False(t, table.HasColumn("missing"))
}

func TestCellFloat(t *testing.T) {
	tests := []struct {
		name   string
		cell   Cell
		want   float64
		wantOK bool
	}{
		{name: "float64", cell: 12.5, want: 12.5, wantOK: true},
		{name: "int", cell: 7, want: 7, wantOK: true},
		{name: "int64", cell: int64(9), want: 9, wantOK: true},
		{name: "text", cell: "12.5", wantOK: false},
		{name: "nil", cell: nil, wantOK: false},
		{name: "bool", cell: true, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CellFloat(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", CellString(nil))
	assert.Equal(t, "abc", CellString("abc"))
	assert.Equal(t, "20", CellString(20.0))
	assert.Equal(t, "12.5", CellString(12.5))
	assert.Equal(t, "true", CellString(true))
}

func TestCellEmpty(t *testing.T) {
	assert.True(t, CellEmpty(nil))
	assert.True(t, CellEmpty(""))
	assert.True(t, CellEmpty("  \t"))
	assert.False(t, CellEmpty("A"))
	assert.False(t, CellEmpty(0.0))
	assert.False(t, CellEmpty(false))
}
