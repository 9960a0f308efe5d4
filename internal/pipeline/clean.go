package pipeline

import (
	"github.com/rydeebs/cleanupIPP/pkg/contracts/domain"
)

// companionDropPos is the order-detail column that ships next to the
// quantity column in the sales export. It carries no information once
// quantities are aggregated, so the cleaner removes it along with the
// raw quantity column.
const companionDropPos = 3

// clean drops footer rows, consumed columns, and duplicate SKUs.
//
// Row filter: a row with an empty or absent SKU cell is assumed to be
// a trailing summary/footer row and dropped unconditionally. This is a
// heuristic keyed on the SKU cell alone, not a structural footer
// detector.
//
// Column drops are independent no-ops when the target column does not
// exist: the raw quantity column, the companion column at position 3
// of the original schema, and the consumed TotalQuantityPerSKU
// aggregate, which is first snapshotted as TotalQuantityValues.
//
// Dedup keeps the first row seen for each distinct SKU value; the row
// order entering this stage decides which duplicate survives.
func clean(t *domain.Table, cols resolvedColumns, origWidth int, aggregated bool) {
	if cols.skuOK {
		dropFooterRows(t, cols.sku)
	}

	if aggregated {
		snapshotTotals(t)
	}

	var drops []string
	if companionDropPos < origWidth {
		drops = append(drops, t.Columns[companionDropPos])
	}
	if cols.quantityOK {
		drops = append(drops, cols.quantity)
	}
	drops = append(drops, ColTotalPerSKU)
	t.DropColumns(drops...)

	if cols.skuOK {
		dedupBySKU(t, cols.sku)
	}
}

// dropFooterRows removes every row whose SKU cell is empty.
func dropFooterRows(t *domain.Table, skuColumn string) {
	skuIdx := t.ColumnIndex(skuColumn)
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		if domain.CellEmpty(cellAt(row, skuIdx)) {
			continue
		}
		kept = append(kept, row)
	}
	t.Rows = kept
}

// cellAt reads a cell from a row slice, padding short rows with nil.
func cellAt(row domain.Row, idx int) domain.Cell {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}

// snapshotTotals copies the intermediate per-SKU totals into the
// retained TotalQuantityValues column before the aggregate column is
// dropped.
func snapshotTotals(t *domain.Table) {
	srcIdx := t.ColumnIndex(ColTotalPerSKU)
	if srcIdx < 0 {
		return
	}
	values := make([]domain.Cell, len(t.Rows))
	for i := range t.Rows {
		values[i] = t.Cell(i, srcIdx)
	}
	_ = t.AppendColumn(ColTotalValues, values)
}

// dedupBySKU keeps only the first occurrence of each SKU value.
func dedupBySKU(t *domain.Table, skuColumn string) {
	skuIdx := t.ColumnIndex(skuColumn)
	seen := make(map[domain.Cell]bool, len(t.Rows))
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		key := cellAt(row, skuIdx)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, row)
	}
	t.Rows = kept
}
