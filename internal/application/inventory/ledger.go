package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain"
	"github.com/restopos/inventory-service/internal/domain/entity"
	"github.com/restopos/inventory-service/internal/domain/repository"
)

// StockLedger is the sole mutation point for stock. Every quantity change in
// the system goes through RecordMovement (or its in-transaction variant): one
// immutable movement row plus the cached current_stock update, committed
// together under a row lock on the item.
type StockLedger struct {
	txRunner     TxRunner
	itemRepo     repository.InventoryItemRepository
	movementRepo repository.StockMovementRepository
}

// NewStockLedger builds the ledger. itemRepo and movementRepo are pool-bound
// and serve the read paths; mutations always go through txRunner.
func NewStockLedger(
	txRunner TxRunner,
	itemRepo repository.InventoryItemRepository,
	movementRepo repository.StockMovementRepository,
) *StockLedger {
	return &StockLedger{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
	}
}

// MovementInput describes one requested stock change. Delta is signed:
// positive increases stock.
type MovementInput struct {
	ItemID     string
	Delta      decimal.Decimal
	Reason     entity.MovementReason
	RelatedID  string
	Notes      string
	EmployeeID string
}

// RecordMovement applies one stock change in its own transaction: lock the
// item row, verify the result would not go negative, insert the movement with
// its stock_after snapshot and update the cached stock.
func (l *StockLedger) RecordMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	var movement *entity.StockMovement
	err := l.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		m, err := RecordMovementInTx(itemRepo, movementRepo, input)
		if err != nil {
			return err
		}
		movement = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// RecordMovementInTx applies one stock change using repositories bound to the
// caller's transaction. IntakeProcessor uses it to post every invoice line
// inside a single transaction; WasteRecorder to pair the movement with its
// waste-log row. The item row stays locked until the caller commits.
func RecordMovementInTx(
	itemRepo repository.InventoryItemRepository,
	movementRepo repository.StockMovementRepository,
	input MovementInput,
) (*entity.StockMovement, error) {
	if !input.Reason.Valid() {
		return nil, domain.ErrInvalidInput
	}

	item, err := itemRepo.GetForUpdate(input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	newStock := item.CurrentStock.Add(input.Delta)
	if newStock.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}

	movement := &entity.StockMovement{
		InventoryItemID: input.ItemID,
		ChangeAmount:    input.Delta,
		StockAfter:      newStock,
		Reason:          input.Reason,
		RelatedID:       input.RelatedID,
		Notes:           input.Notes,
		EmployeeID:      input.EmployeeID,
		CreatedAt:       time.Now(),
	}
	if err := movementRepo.Create(movement); err != nil {
		return nil, err
	}
	if err := itemRepo.UpdateStock(input.ItemID, newStock); err != nil {
		return nil, err
	}
	return movement, nil
}

// Movement returns one ledger entry by id.
func (l *StockLedger) Movement(ctx context.Context, id string) (*entity.StockMovement, error) {
	movement, err := l.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}
	return movement, nil
}

// CurrentStock returns the cached stock of an item.
func (l *StockLedger) CurrentStock(ctx context.Context, itemID string) (decimal.Decimal, error) {
	item, err := l.itemRepo.GetByID(itemID)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return item.CurrentStock, nil
}

// HistoryPage is one page of an item's movement history.
type HistoryPage struct {
	Movements []*entity.StockMovement
	Total     int64
	Limit     int
	Offset    int
}

// History lists an item's movements, newest first, filtered by reason,
// employee and date range.
func (l *StockLedger) History(ctx context.Context, itemID string, filter repository.MovementFilter) (*HistoryPage, error) {
	if filter.Reason != "" && !filter.Reason.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	item, err := l.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	movements, err := l.movementRepo.ListByItem(itemID, filter)
	if err != nil {
		return nil, err
	}
	total, err := l.movementRepo.CountByItem(itemID, filter)
	if err != nil {
		return nil, err
	}
	return &HistoryPage{
		Movements: movements,
		Total:     total,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	}, nil
}

// SumByReason aggregates change_amount for one item and reason over an
// optional date range (e.g. total WASTE this month).
func (l *StockLedger) SumByReason(ctx context.Context, itemID string, reason entity.MovementReason, from, to *time.Time) (decimal.Decimal, error) {
	if !reason.Valid() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	item, err := l.itemRepo.GetByID(itemID)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return l.movementRepo.SumByReason(itemID, reason, from, to)
}
