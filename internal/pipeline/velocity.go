package pipeline

import (
	"sort"

	"github.com/rydeebs/cleanupIPP/pkg/contracts/domain"
)

// rankByVelocity computes each row's velocity and sorts the table by
// it in descending order.
//
// velocity = reference / tableTotal * 100, where tableTotal is the
// frozen pre-clean quantity sum. The caller guarantees tableTotal is
// non-zero. A non-numeric reference cell yields velocity zero rather
// than a hole in the ranking.
//
// The sort is stable: rows with equal velocity keep their pre-sort
// order, which pins down exactly which rows land inside the cumulative
// focus prefix.
func rankByVelocity(t *domain.Table, referenceColumn string, tableTotal float64) {
	refIdx := t.ColumnIndex(referenceColumn)

	velocities := make([]domain.Cell, len(t.Rows))
	for i := range t.Rows {
		ref, _ := domain.CellFloat(t.Cell(i, refIdx))
		velocities[i] = ref / tableTotal * 100
	}
	_ = t.AppendColumn(ColVelocity, velocities)

	velIdx := t.ColumnIndex(ColVelocity)
	sort.SliceStable(t.Rows, func(a, b int) bool {
		va, _ := domain.CellFloat(cellAt(t.Rows[a], velIdx))
		vb, _ := domain.CellFloat(cellAt(t.Rows[b], velIdx))
		return va > vb
	})
}
