package inventory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain"
	"github.com/restopos/inventory-service/internal/domain/entity"
)

// CorrectionHandler records manual audit adjustments, typically after a
// physical count. A correction must move stock (delta != 0) and must say why
// (non-empty notes); everything else is the ledger's business.
type CorrectionHandler struct {
	ledger *StockLedger
}

// NewCorrectionHandler builds the handler.
func NewCorrectionHandler(ledger *StockLedger) *CorrectionHandler {
	return &CorrectionHandler{ledger: ledger}
}

// CreateCorrection posts a CORRECTION movement.
func (h *CorrectionHandler) CreateCorrection(ctx context.Context, itemID string, delta decimal.Decimal, notes, employeeID string) (*entity.StockMovement, error) {
	if delta.IsZero() || strings.TrimSpace(notes) == "" {
		return nil, domain.ErrInvalidInput
	}
	return h.ledger.RecordMovement(ctx, MovementInput{
		ItemID:     itemID,
		Delta:      delta,
		Reason:     entity.ReasonCorrection,
		Notes:      notes,
		EmployeeID: employeeID,
	})
}
