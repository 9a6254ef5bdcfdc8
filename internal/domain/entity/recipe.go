package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe maps one sellable product (external catalog id) to the quantity of a
// single inventory item consumed per unit sold. A product's full recipe is the
// set of its rows; (ProductID, InventoryItemID) is unique.
type Recipe struct {
	ID              string
	ProductID       string
	InventoryItemID string
	QuantityUsed    decimal.Decimal // > 0, per one unit of product
	CreatedAt       time.Time
}
