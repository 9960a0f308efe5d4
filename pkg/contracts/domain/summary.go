package domain

// Summary holds the run-level metrics returned alongside the cleaned
// table.
type Summary struct {
	// TotalSKUs is the post-dedup row count of the output table.
	TotalSKUs int `json:"total_skus"`
	// TotalQuantity is the sum of the quantity column over the raw
	// input, frozen before any row is dropped.
	TotalQuantity float64 `json:"total_quantity"`
	// FocusCount is the number of rows flagged as focus SKUs.
	FocusCount int `json:"focus_count"`
	// FocusSKUs is the focus subset projected to its key metrics,
	// in output (velocity-sorted) order.
	FocusSKUs []FocusSKU `json:"focus_skus,omitempty"`
}

// FocusSKU is one flagged row projected to the fields shown in the
// summary listing.
type FocusSKU struct {
	SKU           string  `json:"sku"`
	TotalQuantity float64 `json:"total_quantity"`
	Velocity      float64 `json:"velocity"`
}

// Warning reports a recoverable condition that caused a pipeline stage
// to be skipped or degraded. Warnings never abort a run.
type Warning struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// WarningMessages flattens warnings to plain strings for logs and
// response payloads.
func WarningMessages(warnings []Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.Stage + ": " + w.Message
	}
	return out
}
