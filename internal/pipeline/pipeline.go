package pipeline

import (
	"github.com/rydeebs/cleanupIPP/pkg/contracts/domain"
)

// Derived column names added by the pipeline.
const (
	// ColTotalPerSKU is the intermediate per-SKU quantity total. It is
	// consumed by the cleaner and never appears in the output schema.
	ColTotalPerSKU = "TotalQuantityPerSKU"
	// ColTotalValues is the value-only snapshot of the per-SKU totals
	// retained in the output.
	ColTotalValues = "TotalQuantityValues"
	// ColVelocity is the per-row percentage share of the reference
	// column relative to the table-wide quantity total.
	ColVelocity = "Velocity"
	// ColCumulative is the running sum of velocity in sorted order,
	// kept as a diagnostic column.
	ColCumulative = "CumulativePercentage"
	// ColFocus marks rows classified as focus SKUs.
	ColFocus = "FocusSKU"
)

// Stage names used in warnings.
const (
	StageContract  = "contract"
	StageAggregate = "aggregate"
	StageClean     = "clean"
	StageVelocity  = "velocity"
	StageFocus     = "focus"
)

// Config holds the tunable parameters of a pipeline.
type Config struct {
	// Contract maps semantic fields to column positions.
	Contract ColumnContract `json:"contract" yaml:"contract"`
	// FocusUnits is the absolute-volume threshold: a SKU with at least
	// this many total units is always a focus SKU.
	FocusUnits float64 `json:"focus_units" yaml:"focus_units" validate:"min=0"`
	// FocusCumulativeCutoff bounds the velocity-sorted prefix counted
	// as focus SKUs, in cumulative percentage points.
	FocusCumulativeCutoff float64 `json:"focus_cumulative_cutoff" yaml:"focus_cumulative_cutoff" validate:"min=0,max=100"`
}

// DefaultConfig returns the standard thresholds: 200 units or the top
// 80% of volume.
func DefaultConfig() Config {
	return Config{
		Contract:              DefaultColumnContract(),
		FocusUnits:            200,
		FocusCumulativeCutoff: 80,
	}
}

// Pipeline transforms a raw sales-export table into the cleaned,
// ranked, classified report table. It holds no per-run state and is
// safe for reuse across runs.
type Pipeline struct {
	cfg Config
}

// New creates a pipeline. Zero thresholds are replaced with defaults
// so an empty Config behaves like DefaultConfig.
func New(cfg Config) *Pipeline {
	if cfg.FocusUnits == 0 {
		cfg.FocusUnits = 200
	}
	if cfg.FocusCumulativeCutoff == 0 {
		cfg.FocusCumulativeCutoff = 80
	}
	return &Pipeline{cfg: cfg}
}

// Result is the complete outcome of one run.
type Result struct {
	// Table is the cleaned output table.
	Table domain.Table `json:"table"`
	// Summary carries the run-level metrics.
	Summary domain.Summary `json:"summary"`
	// Warnings lists every stage that was skipped or degraded.
	Warnings []domain.Warning `json:"warnings,omitempty"`
}

// Run executes the full pipeline over the input table. The input is
// never mutated; each stage operates on its own copy. Run cannot fail:
// unresolvable columns degrade the output and are reported as
// warnings.
func (p *Pipeline) Run(input domain.Table) Result {
	t := input.Clone()
	origWidth := t.Width()

	cols, warnings := p.cfg.Contract.resolve(t)

	// Aggregation needs both the grouping key and the quantity field.
	var totals aggregation
	aggregated := cols.skuOK && cols.quantityOK
	if aggregated {
		totals = aggregate(&t, cols.sku, cols.quantity)
	}

	clean(&t, cols, origWidth, aggregated)

	velocityOK := false
	if aggregated && cols.referenceOK {
		if totals.tableTotal == 0 {
			// Velocity is undefined for a zero total; skipping the
			// stage keeps non-finite values out of the output.
			warnings = append(warnings, domain.Warning{
				Stage:   StageVelocity,
				Message: "table-wide quantity total is zero; velocity, ranking and focus classification skipped",
			})
		} else {
			rankByVelocity(&t, cols.reference, totals.tableTotal)
			velocityOK = true
		}
	}

	focusOK := false
	if velocityOK && t.HasColumn(ColTotalValues) {
		classifyFocus(&t, p.cfg.FocusUnits, p.cfg.FocusCumulativeCutoff)
		focusOK = true
	}

	summary := domain.Summary{
		TotalSKUs:     t.Len(),
		TotalQuantity: totals.tableTotal,
	}
	if focusOK {
		summary.FocusSKUs = focusSubset(t, cols.sku)
		summary.FocusCount = len(summary.FocusSKUs)
	}

	return Result{Table: t, Summary: summary, Warnings: warnings}
}

// focusSubset projects the flagged rows to {SKU, TotalQuantityValues,
// Velocity} in output order. The SKU column is looked up by resolved
// name since column drops shift positions.
func focusSubset(t domain.Table, skuColumn string) []domain.FocusSKU {
	skuIdx := t.ColumnIndex(skuColumn)
	focusIdx := t.ColumnIndex(ColFocus)
	totalIdx := t.ColumnIndex(ColTotalValues)
	velIdx := t.ColumnIndex(ColVelocity)
	if skuIdx < 0 || focusIdx < 0 || totalIdx < 0 || velIdx < 0 {
		return nil
	}

	var out []domain.FocusSKU
	for i := range t.Rows {
		flagged, _ := t.Cell(i, focusIdx).(bool)
		if !flagged {
			continue
		}
		total, _ := domain.CellFloat(t.Cell(i, totalIdx))
		velocity, _ := domain.CellFloat(t.Cell(i, velIdx))
		out = append(out, domain.FocusSKU{
			SKU:           domain.CellString(t.Cell(i, skuIdx)),
			TotalQuantity: total,
			Velocity:      velocity,
		})
	}
	return out
}
