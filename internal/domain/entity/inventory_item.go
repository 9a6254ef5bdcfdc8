package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a tracked ingredient or stock-keeping unit.
// CurrentStock is a denormalized cache over the movement log: it is only ever
// written as a side effect of recording a StockMovement, never directly.
type InventoryItem struct {
	ID              string
	Name            string
	Unit            string // kg, l, pcs, ...
	CurrentStock    decimal.Decimal
	LastCostPerUnit *decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
