package pipeline

import (
	"github.com/rydeebs/cleanupIPP/pkg/contracts/domain"
)

// classifyFocus appends the CumulativePercentage and FocusSKU columns.
//
// The cumulative percentage is the running velocity sum in the sorted
// order produced by rankByVelocity; with non-negative velocities it is
// non-decreasing down the table. A row is a focus SKU when either rule
// holds, evaluated independently:
//
//   - its total quantity is at least focusUnits, or
//   - its cumulative percentage is within the cutoff, i.e. the row
//     belongs to the prefix jointly making up the top share of volume.
//
// The rules are a plain union: a first row whose velocity alone blows
// past the cutoff is outside the volume prefix but can still qualify
// on units.
func classifyFocus(t *domain.Table, focusUnits, cumulativeCutoff float64) {
	velIdx := t.ColumnIndex(ColVelocity)
	totalIdx := t.ColumnIndex(ColTotalValues)

	cumulative := make([]domain.Cell, len(t.Rows))
	flags := make([]domain.Cell, len(t.Rows))
	var running float64
	for i := range t.Rows {
		velocity, _ := domain.CellFloat(t.Cell(i, velIdx))
		running += velocity
		cumulative[i] = running

		total, _ := domain.CellFloat(t.Cell(i, totalIdx))
		flags[i] = total >= focusUnits || running <= cumulativeCutoff
	}

	_ = t.AppendColumn(ColCumulative, cumulative)
	_ = t.AppendColumn(ColFocus, flags)
}
