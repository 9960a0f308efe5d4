// Package exporter renders the cleaned report table for delivery.
//
// ExcelWriter produces the .xlsx download: one "Cleaned Data" sheet
// with an autofilter over the header row and a yellow fill on rows
// flagged as focus SKUs. Styling and autofilter are cosmetic: when
// applying them fails the data is still written and the failure is
// reported as a warning, never an error.
//
// CSVWriter provides plain-text exports of the table and of the
// focus-SKU summary, with an optional UTF-8 BOM so Excel opens the
// files with the right encoding.
package exporter
