package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rydeebs/cleanupIPP/internal/pipeline"
	"github.com/rydeebs/cleanupIPP/pkg/contracts/domain"
)

// focusFillColor is the highlight applied to focus-SKU rows.
const focusFillColor = "FFFF00"

// ExcelWriter renders a cleaned table as an .xlsx workbook.
type ExcelWriter struct {
	sheetName string
}

// NewExcelWriter creates an Excel writer targeting the standard output
// sheet.
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{sheetName: "Cleaned Data"}
}

// Write serializes the table to w. Data cells always make it into the
// workbook; highlighting and autofilter failures are demoted to
// warnings so a cosmetic problem never loses the report.
func (e *ExcelWriter) Write(w io.Writer, table domain.Table) ([]domain.Warning, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", e.sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(e.sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		values := make([]interface{}, len(row))
		for j, c := range row {
			values[j] = c
		}
		if err := f.SetSheetRow(e.sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	warnings := e.applyFormatting(f, table)

	if err := f.Write(w); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return warnings, nil
}

// applyFormatting adds the header autofilter and the focus-row fill.
func (e *ExcelWriter) applyFormatting(f *excelize.File, table domain.Table) []domain.Warning {
	var warnings []domain.Warning

	if table.Width() > 0 {
		lastCell, err := excelize.CoordinatesToCellName(table.Width(), table.Len()+1)
		if err == nil {
			err = f.AutoFilter(e.sheetName, "A1:"+lastCell, nil)
		}
		if err != nil {
			warnings = append(warnings, domain.Warning{
				Stage:   "export",
				Message: fmt.Sprintf("could not apply autofilter: %v", err),
			})
		}
	}

	focusIdx := table.ColumnIndex(pipeline.ColFocus)
	if focusIdx < 0 {
		return warnings
	}

	styleID, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{focusFillColor}, Pattern: 1},
	})
	if err != nil {
		warnings = append(warnings, domain.Warning{
			Stage:   "export",
			Message: fmt.Sprintf("could not create highlight style: %v", err),
		})
		return warnings
	}

	for i := range table.Rows {
		flagged, _ := table.Cell(i, focusIdx).(bool)
		if !flagged {
			continue
		}
		first, err1 := excelize.CoordinatesToCellName(1, i+2)
		last, err2 := excelize.CoordinatesToCellName(table.Width(), i+2)
		if err1 == nil && err2 == nil {
			err = f.SetCellStyle(e.sheetName, first, last, styleID)
		}
		if err != nil || err1 != nil || err2 != nil {
			warnings = append(warnings, domain.Warning{
				Stage:   "export",
				Message: fmt.Sprintf("could not highlight row %d", i+2),
			})
		}
	}

	return warnings
}
