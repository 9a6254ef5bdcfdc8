package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain/entity"
)

// MovementFilter narrows a movement history listing. Zero values mean "no
// filter" for that dimension.
type MovementFilter struct {
	Reason     entity.MovementReason
	EmployeeID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// StockMovementRepository is the persistence port for the append-only ledger.
// There is deliberately no Update or Delete: movements are immutable.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByItem(itemID string, filter MovementFilter) ([]*entity.StockMovement, error)
	CountByItem(itemID string, filter MovementFilter) (int64, error)
	// SumByReason returns the sum of change_amount for one item and reason
	// within the optional date range.
	SumByReason(itemID string, reason entity.MovementReason, from, to *time.Time) (decimal.Decimal, error)
}
