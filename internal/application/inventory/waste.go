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

// WasteRecorder records spoilage: a WasteLog row plus the matching WASTE
// ledger movement, committed together. If the deduction fails the log row is
// rolled back with it.
type WasteRecorder struct {
	txRunner  TxRunner
	wasteRepo repository.WasteLogRepository
}

// NewWasteRecorder builds the recorder. wasteRepo is pool-bound and serves
// the history read path.
func NewWasteRecorder(txRunner TxRunner, wasteRepo repository.WasteLogRepository) *WasteRecorder {
	return &WasteRecorder{txRunner: txRunner, wasteRepo: wasteRepo}
}

// WasteInput describes one waste event.
type WasteInput struct {
	ItemID     string
	Quantity   decimal.Decimal // > 0
	Reason     string          // required free text: "expired", "dropped", ...
	WasteDate  time.Time
	NotedBy    string
	Notes      string
	EmployeeID string
}

// RecordWaste inserts the waste log and deducts the quantity from stock. The
// ledger rejects a deduction past zero, so wasting more than is on hand fails
// without persisting anything.
func (w *WasteRecorder) RecordWaste(ctx context.Context, input WasteInput) (*entity.WasteLog, *entity.StockMovement, error) {
	if !input.Quantity.IsPositive() || strings.TrimSpace(input.Reason) == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if input.WasteDate.IsZero() {
		input.WasteDate = time.Now()
	}

	var wasteLog *entity.WasteLog
	var movement *entity.StockMovement
	err := w.txRunner.RunWaste(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movementRepo repository.StockMovementRepository,
		wasteRepo repository.WasteLogRepository,
	) error {
		log := &entity.WasteLog{
			InventoryItemID: input.ItemID,
			Quantity:        input.Quantity,
			Reason:          input.Reason,
			WasteDate:       input.WasteDate,
			NotedBy:         input.NotedBy,
			Notes:           input.Notes,
			CreatedAt:       time.Now(),
		}
		if err := wasteRepo.Create(log); err != nil {
			return err
		}
		m, err := RecordMovementInTx(itemRepo, movementRepo, MovementInput{
			ItemID:     input.ItemID,
			Delta:      input.Quantity.Neg(),
			Reason:     entity.ReasonWaste,
			RelatedID:  log.ID,
			Notes:      input.Reason,
			EmployeeID: input.EmployeeID,
		})
		if err != nil {
			return err
		}
		wasteLog = log
		movement = m
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return wasteLog, movement, nil
}

// WasteHistory pages an item's waste records, newest first.
func (w *WasteRecorder) WasteHistory(ctx context.Context, itemID string, limit, offset int) ([]*entity.WasteLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return w.wasteRepo.ListByItem(itemID, limit, offset)
}
