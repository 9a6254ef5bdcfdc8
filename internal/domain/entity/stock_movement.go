package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementReason is the closed set of reasons a stock movement can have.
type MovementReason string

const (
	ReasonIntake     MovementReason = "INTAKE"     // supplier invoice finalized
	ReasonSale       MovementReason = "SALE"       // order-driven recipe consumption
	ReasonWaste      MovementReason = "WASTE"      // spoilage, breakage
	ReasonCorrection MovementReason = "CORRECTION" // manual audit adjustment
	ReasonInitial    MovementReason = "INITIAL"    // opening stock at item creation
)

// Valid reports whether r is one of the known movement reasons.
func (r MovementReason) Valid() bool {
	switch r {
	case ReasonIntake, ReasonSale, ReasonWaste, ReasonCorrection, ReasonInitial:
		return true
	}
	return false
}

// StockMovement is one immutable entry of the append-only stock ledger.
// ChangeAmount is signed (positive = increase); StockAfter is the item's
// cached stock immediately after this movement was applied. Rows are never
// updated or deleted.
type StockMovement struct {
	ID              string
	InventoryItemID string
	ChangeAmount    decimal.Decimal
	StockAfter      decimal.Decimal
	Reason          MovementReason
	RelatedID       string // invoice id, order-item id or waste-log id, depending on reason
	Notes           string
	EmployeeID      string
	CreatedAt       time.Time
}
