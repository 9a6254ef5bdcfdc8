package repository

import "github.com/restopos/inventory-service/internal/domain/entity"

// OrderDeductionRepository is the persistence port for per-order consumption
// claims. Create must fail with domain.ErrDuplicate when the order was
// already claimed (unique order_id).
type OrderDeductionRepository interface {
	Create(deduction *entity.OrderDeduction) error
	GetByOrderID(orderID string) (*entity.OrderDeduction, error)
}
