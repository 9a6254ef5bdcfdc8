package repository

import (
	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain/entity"
)

// InventoryItemRepository is the persistence port for inventory items.
// CurrentStock writes go exclusively through UpdateStock, and only the stock
// ledger calls it (inside the transaction that inserts the movement row).
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	// GetForUpdate loads the item and locks its row (SELECT ... FOR UPDATE)
	// until the surrounding transaction ends. Returns nil when absent.
	GetForUpdate(id string) (*entity.InventoryItem, error)
	UpdateStock(id string, newStock decimal.Decimal) error
	UpdateLastCost(id string, cost decimal.Decimal) error
	List() ([]*entity.InventoryItem, error)
	ListBelow(threshold decimal.Decimal) ([]*entity.InventoryItem, error)
}
