package pipeline

import (
	"fmt"

	"github.com/rydeebs/cleanupIPP/pkg/contracts/domain"
)

// Default positional contract of the sales export: SKU in the first
// column, quantity sold in the fifth, reference total in the seventh.
const (
	DefaultSKUPos       = 0
	DefaultQuantityPos  = 4
	DefaultReferencePos = 6
)

// ColumnContract is the fixed mapping from semantic field to column
// position. The caller supplies it; the pipeline never infers meaning
// from header text.
type ColumnContract struct {
	SKUPos       int `json:"sku_pos" yaml:"sku_pos" validate:"min=0"`
	QuantityPos  int `json:"quantity_pos" yaml:"quantity_pos" validate:"min=0"`
	ReferencePos int `json:"reference_pos" yaml:"reference_pos" validate:"min=0"`
}

// DefaultColumnContract returns the standard sales-export layout.
func DefaultColumnContract() ColumnContract {
	return ColumnContract{
		SKUPos:       DefaultSKUPos,
		QuantityPos:  DefaultQuantityPos,
		ReferencePos: DefaultReferencePos,
	}
}

// resolvedColumns carries the column names located for each semantic
// field. Resolution happens once, against the original input schema,
// before any column is added or dropped; later stages go by name so
// column drops cannot shift their targets.
type resolvedColumns struct {
	sku         string
	skuOK       bool
	quantity    string
	quantityOK  bool
	reference   string
	referenceOK bool
}

// resolve maps the contract onto the table's schema. Each field
// resolves independently: a stage only needs the fields it uses, so a
// narrow table disables some stages without failing the run.
func (c ColumnContract) resolve(t domain.Table) (resolvedColumns, []domain.Warning) {
	var res resolvedColumns
	var warnings []domain.Warning

	if c.SKUPos < t.Width() {
		res.sku = t.Columns[c.SKUPos]
		res.skuOK = true
	} else {
		warnings = append(warnings, domain.Warning{
			Stage:   StageContract,
			Message: fmt.Sprintf("SKU column position %d out of range for %d-column table; grouping stages skipped", c.SKUPos, t.Width()),
		})
	}

	if c.QuantityPos < t.Width() {
		res.quantity = t.Columns[c.QuantityPos]
		res.quantityOK = true
	} else {
		warnings = append(warnings, domain.Warning{
			Stage:   StageContract,
			Message: fmt.Sprintf("quantity column position %d out of range for %d-column table; aggregation and velocity skipped", c.QuantityPos, t.Width()),
		})
	}

	if c.ReferencePos < t.Width() {
		res.reference = t.Columns[c.ReferencePos]
		res.referenceOK = true
	} else {
		warnings = append(warnings, domain.Warning{
			Stage:   StageContract,
			Message: fmt.Sprintf("reference column position %d out of range for %d-column table; velocity and focus classification skipped", c.ReferencePos, t.Width()),
		})
	}

	return res, warnings
}
