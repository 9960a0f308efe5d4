// Package dataprocessing decodes spreadsheet and CSV sales exports
// into the in-memory table consumed by the cleaning pipeline.
//
// Decoding is the one fatal error class of a run: a file that cannot
// be opened or read produces a terminal error and no partial table.
// Everything after decoding degrades gracefully inside the pipeline.
//
// Basic usage:
//
//	table, err := dataprocessing.ParseFile("sales_export.xlsx")
//	if err != nil {
//	    return err
//	}
//	result := pipeline.New(pipeline.DefaultConfig()).Run(table)
package dataprocessing
