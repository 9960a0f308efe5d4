// Package pipeline implements the sales-export cleaning pipeline: a
// deterministic, single-pass batch transformation over an in-memory
// table.
//
// # Stages
//
// A run walks a fixed sequence of stages, each consuming the previous
// stage's output table:
//
//  1. Contract resolution: map the positional column contract
//     (SKU, quantity, reference) onto the input schema.
//  2. Aggregation: per-SKU quantity totals plus the table-wide total.
//  3. Cleaning: drop footer rows (empty SKU), drop consumed columns,
//     dedup by SKU keeping the first occurrence.
//  4. Velocity & ranking: reference share of total quantity, stable
//     descending sort.
//  5. Focus classification: absolute-volume threshold OR membership in
//     the cumulative top-80%-by-velocity prefix.
//
// # Degradation
//
// A stage whose columns cannot be resolved is skipped together with
// every stage depending on its output; each skip is reported as a
// domain.Warning and the run still returns the prefix of stages that
// succeeded. Nothing in this package logs or touches the filesystem:
// Run is a pure function so callers own all side effects.
//
// Example:
//
//	p := pipeline.New(pipeline.DefaultConfig())
//	result := p.Run(table)
//	fmt.Println(result.Summary.FocusCount, len(result.Warnings))
package pipeline
