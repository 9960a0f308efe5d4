package pipeline

import (
	"github.com/rydeebs/cleanupIPP/pkg/contracts/domain"
)

// aggregation carries the totals produced by the aggregate stage.
type aggregation struct {
	// tableTotal is the quantity sum over the entire pre-clean table.
	// It is frozen here and reused by the velocity stage regardless of
	// how many rows the cleaner drops later.
	tableTotal float64
}

// aggregate computes the per-SKU quantity totals and broadcasts each
// group's sum back onto every member row as the TotalQuantityPerSKU
// column.
//
// The spreadsheet original did this with a SUMIF per row, an O(n²)
// scan. A single hash-grouping pass produces identical output in O(n);
// rows are grouped by the exact SKU cell value, so string and numeric
// keys compare by value. Non-numeric quantity cells contribute zero,
// the same way a spreadsheet SUM ignores text.
func aggregate(t *domain.Table, skuColumn, quantityColumn string) aggregation {
	skuIdx := t.ColumnIndex(skuColumn)
	qtyIdx := t.ColumnIndex(quantityColumn)

	perSKU := make(map[domain.Cell]float64, len(t.Rows))
	var tableTotal float64
	for i := range t.Rows {
		qty, ok := domain.CellFloat(t.Cell(i, qtyIdx))
		if !ok {
			continue
		}
		perSKU[t.Cell(i, skuIdx)] += qty
		tableTotal += qty
	}

	totals := make([]domain.Cell, len(t.Rows))
	for i := range t.Rows {
		totals[i] = perSKU[t.Cell(i, skuIdx)]
	}
	// The value count matches the row count by construction.
	_ = t.AppendColumn(ColTotalPerSKU, totals)

	return aggregation{tableTotal: tableTotal}
}
