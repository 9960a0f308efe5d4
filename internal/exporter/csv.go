package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rydeebs/cleanupIPP/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality.
type CSVWriter struct{}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// Write streams headers and records to dst.
func (w *CSVWriter) Write(dst io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := dst.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(dst)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes a CSV file, creating parent directories as needed.
func (w *CSVWriter) WriteFile(path string, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := w.Write(f, options); err != nil {
		return err
	}
	return f.Close()
}

// TableOptions converts a cleaned table to CSV write options.
func TableOptions(table domain.Table, withBOM bool) WriteOptions {
	records := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		record := make([]string, table.Width())
		for j := 0; j < table.Width(); j++ {
			if j < len(row) {
				record[j] = domain.CellString(row[j])
			}
		}
		records[i] = record
	}
	return WriteOptions{
		Headers:   append([]string(nil), table.Columns...),
		Records:   records,
		BOMPrefix: withBOM,
	}
}

// FocusSummaryOptions converts the focus-SKU summary listing to CSV
// write options.
func FocusSummaryOptions(summary domain.Summary) WriteOptions {
	records := make([][]string, len(summary.FocusSKUs))
	for i, f := range summary.FocusSKUs {
		records[i] = []string{f.SKU, formatFloat(f.TotalQuantity), formatFloat(f.Velocity)}
	}
	return WriteOptions{
		Headers: []string{"SKU", "TotalQuantityValues", "Velocity"},
		Records: records,
	}
}
