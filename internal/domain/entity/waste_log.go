package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WasteLog records a discarded quantity (spoilage, breakage, expiry) together
// with who noted it. The matching WASTE ledger movement references this row.
type WasteLog struct {
	ID              string
	InventoryItemID string
	Quantity        decimal.Decimal // > 0
	Reason          string          // free text: "expired", "dropped", ...
	WasteDate       time.Time
	NotedBy         string
	Notes           string
	CreatedAt       time.Time
}
