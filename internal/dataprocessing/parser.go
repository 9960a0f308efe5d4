package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rydeebs/cleanupIPP/pkg/contracts/domain"
)

// ParseFile reads a sales export from disk. The format is chosen by
// file extension: .csv is parsed as CSV, everything else is treated as
// a spreadsheet.
func ParseFile(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Parse(f, filepath.Base(path))
}

// Parse decodes a sales export from a reader. The name is only used to
// pick the format by extension.
func Parse(r io.Reader, name string) (domain.Table, error) {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return ParseCSV(r)
	}
	return ParseExcel(r)
}

// ParseExcel decodes an .xlsx workbook into a table. The first sheet
// containing any rows is used; its first row becomes the column
// schema.
func ParseExcel(r io.Reader) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var rows [][]string
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			return domain.Table{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		if len(sheetRows) > 0 {
			rows = sheetRows
			break
		}
	}
	if len(rows) == 0 {
		return domain.Table{}, fmt.Errorf("workbook contains no data")
	}

	return tableFromRows(rows)
}

// ParseCSV decodes a CSV export into a table. The first record becomes
// the column schema.
func ParseCSV(r io.Reader) (domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // sales exports often have ragged footer rows

	rows, err := reader.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return domain.Table{}, fmt.Errorf("CSV contains no data")
	}

	return tableFromRows(rows)
}

// tableFromRows builds a table from raw string rows: header first,
// then data. Duplicate header names are rejected because all later
// stages look columns up by name.
func tableFromRows(rows [][]string) (domain.Table, error) {
	header := rows[0]
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if seen[name] {
			return domain.Table{}, fmt.Errorf("duplicate column name %q in header", name)
		}
		seen[name] = true
		columns[i] = name
	}

	table := domain.NewTable(columns)
	table.Rows = make([]domain.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make(domain.Row, len(columns))
		for i := range columns {
			if i < len(raw) {
				row[i] = parseCell(raw[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// parseCell converts raw cell text to a typed cell: numeric text to
// float64, blank text to nil, anything else stays a string.
func parseCell(raw string) domain.Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
