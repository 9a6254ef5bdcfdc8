package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/restopos/inventory-service/internal/domain"
	"github.com/restopos/inventory-service/internal/domain/entity"
	"github.com/restopos/inventory-service/internal/domain/repository"
)

var _ repository.OrderDeductionRepository = (*OrderDeductionRepo)(nil)

// OrderDeductionRepo implements OrderDeductionRepository over PostgreSQL.
// The unique order_id constraint is what makes deduct-for-order idempotent.
type OrderDeductionRepo struct {
	q Querier
}

// NewOrderDeductionRepository builds the adapter. Pass pool or tx (Querier).
func NewOrderDeductionRepository(q Querier) *OrderDeductionRepo {
	return &OrderDeductionRepo{q: q}
}

// Create claims an order. A second claim for the same order fails with
// domain.ErrDuplicate.
func (r *OrderDeductionRepo) Create(deduction *entity.OrderDeduction) error {
	if deduction.ID == "" {
		deduction.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_deductions (id, order_id, deducted_at)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, deduction.ID, deduction.OrderID, deduction.DeductedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create order deduction: %w", err)
	}
	return nil
}

// GetByOrderID returns the claim for an order, or nil when absent.
func (r *OrderDeductionRepo) GetByOrderID(orderID string) (*entity.OrderDeduction, error) {
	query := `SELECT id, order_id, deducted_at FROM order_deductions WHERE order_id = $1`
	var deduction entity.OrderDeduction
	err := r.q.QueryRow(context.Background(), query, orderID).Scan(
		&deduction.ID, &deduction.OrderID, &deduction.DeductedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order deduction: %w", err)
	}
	return &deduction, nil
}
