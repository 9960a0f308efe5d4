package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rydeebs/cleanupIPP/internal/pipeline"
	"github.com/rydeebs/cleanupIPP/pkg/contracts/domain"
)

func cleanedTable() domain.Table {
	return domain.Table{
		Columns: []string{"SKU", "Name", pipeline.ColTotalValues, pipeline.ColVelocity, pipeline.ColCumulative, pipeline.ColFocus},
		Rows: []domain.Row{
			{"B", "Gadget", 30.0, 80.0, 80.0, true},
			{"A", "Widget", 20.0, 10.0, 90.0, false},
		},
	}
}

func TestExcelWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	warnings, err := NewExcelWriter().Write(&buf, cleanedTable())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Contains(t, f.GetSheetList(), "Cleaned Data")

	got, err := f.GetCellValue("Cleaned Data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "SKU", got)

	got, err = f.GetCellValue("Cleaned Data", "A2")
	require.NoError(t, err)
	assert.Equal(t, "B", got)

	got, err = f.GetCellValue("Cleaned Data", "D2")
	require.NoError(t, err)
	assert.Equal(t, "80", got)

	got, err = f.GetCellValue("Cleaned Data", "F3")
	require.NoError(t, err)
	assert.Equal(t, "FALSE", got)
}

func TestExcelWriter_MixedCellTypesRoundTrip(t *testing.T) {
	table := domain.Table{
		Columns: []string{"SKU", "Note", "Qty", "Flag", "Blank"},
		Rows: []domain.Row{
			{"A-1", "hello", 12.5, true, nil},
		},
	}

	var buf bytes.Buffer
	_, err := NewExcelWriter().Write(&buf, table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Cleaned Data")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"A-1", "hello", "12.5", "TRUE"}, rows[1])
}

func TestExcelWriter_HighlightsFocusRows(t *testing.T) {
	var buf bytes.Buffer
	warnings, err := NewExcelWriter().Write(&buf, cleanedTable())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	focusStyle, err := f.GetCellStyle("Cleaned Data", "A2")
	require.NoError(t, err)
	plainStyle, err := f.GetCellStyle("Cleaned Data", "A3")
	require.NoError(t, err)
	assert.NotEqual(t, plainStyle, focusStyle, "focus row should carry the highlight style")
}

func TestExcelWriter_NoFocusColumn(t *testing.T) {
	// Degraded runs have no FocusSKU column; the writer still emits a
	// plain workbook with no warnings beyond formatting.
	table := domain.Table{
		Columns: []string{"SKU", "Name"},
		Rows:    []domain.Row{{"A", "Widget"}},
	}

	var buf bytes.Buffer
	warnings, err := NewExcelWriter().Write(&buf, table)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Cleaned Data", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Widget", got)
}

func TestExcelWriter_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	warnings, err := NewExcelWriter().Write(&buf, domain.NewTable([]string{"SKU"}))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.NotZero(t, buf.Len())
}
