package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain"
	"github.com/restopos/inventory-service/internal/domain/entity"
	"github.com/restopos/inventory-service/internal/domain/repository"
)

// ItemService manages inventory items. Creation posts the opening stock as an
// INITIAL ledger movement so the movement log accounts for every unit from
// the first row on.
type ItemService struct {
	txRunner TxRunner
	itemRepo repository.InventoryItemRepository
}

// NewItemService builds the service.
func NewItemService(txRunner TxRunner, itemRepo repository.InventoryItemRepository) *ItemService {
	return &ItemService{txRunner: txRunner, itemRepo: itemRepo}
}

// CreateItemInput is the input for CreateItem.
type CreateItemInput struct {
	Name            string
	Unit            string
	OpeningStock    decimal.Decimal // >= 0
	LastCostPerUnit *decimal.Decimal
	EmployeeID      string
}

// CreateItem inserts the item with zero stock and, when an opening quantity
// is given, records it through the ledger as an INITIAL movement.
func (s *ItemService) CreateItem(ctx context.Context, input CreateItemInput) (*entity.InventoryItem, error) {
	name := strings.TrimSpace(input.Name)
	unit := strings.TrimSpace(input.Unit)
	if name == "" || unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.OpeningStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	item := &entity.InventoryItem{
		Name:            name,
		Unit:            unit,
		CurrentStock:    decimal.Zero,
		LastCostPerUnit: input.LastCostPerUnit,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := s.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		if input.OpeningStock.IsZero() {
			return nil
		}
		movement, err := RecordMovementInTx(itemRepo, movementRepo, MovementInput{
			ItemID:     item.ID,
			Delta:      input.OpeningStock,
			Reason:     entity.ReasonInitial,
			EmployeeID: input.EmployeeID,
		})
		if err != nil {
			return err
		}
		item.CurrentStock = movement.StockAfter
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Item returns one item by id.
func (s *ItemService) Item(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// Items lists all items with their cached stock.
func (s *ItemService) Items(ctx context.Context) ([]*entity.InventoryItem, error) {
	return s.itemRepo.List()
}

// LowStock lists items whose cached stock is at or below threshold.
func (s *ItemService) LowStock(ctx context.Context, threshold decimal.Decimal) ([]*entity.InventoryItem, error) {
	if threshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	return s.itemRepo.ListBelow(threshold)
}
