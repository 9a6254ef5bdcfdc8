package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain/entity"
	"github.com/restopos/inventory-service/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implements the append-only movement log over PostgreSQL
// (usable with pool or tx). Insert and read only; no update or delete exists.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository builds the adapter. Pass pool or tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, inventory_item_id, change_amount, stock_after, reason, related_id, notes, employee_id, created_at`

// Create persists one movement row.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, inventory_item_id, change_amount, stock_after, reason, related_id, notes, employee_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.InventoryItemID, movement.ChangeAmount, movement.StockAfter,
		string(movement.Reason), nullable(movement.RelatedID), nullable(movement.Notes),
		nullable(movement.EmployeeID), movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID returns one movement, or nil when absent.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	movement, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return movement, nil
}

// ListByItem lists an item's movements, newest first, applying the filter.
func (r *StockMovementRepo) ListByItem(itemID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE inventory_item_id = $1`
	args := []any{itemID}
	query, args = appendFilter(query, args, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, movement)
	}
	return list, rows.Err()
}

// CountByItem counts the movements a ListByItem with the same filter would
// page over.
func (r *StockMovementRepo) CountByItem(itemID string, filter repository.MovementFilter) (int64, error) {
	query := `SELECT count(*) FROM stock_movements WHERE inventory_item_id = $1`
	args := []any{itemID}
	query, args = appendFilter(query, args, filter)

	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}

// SumByReason sums change_amount for one item and reason over an optional
// date range.
func (r *StockMovementRepo) SumByReason(itemID string, reason entity.MovementReason, from, to *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(sum(change_amount), 0) FROM stock_movements WHERE inventory_item_id = $1 AND reason = $2`
	args := []any{itemID, string(reason)}
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", len(args)+1)
		args = append(args, *from)
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", len(args)+1)
		args = append(args, *to)
	}

	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}

func appendFilter(query string, args []any, filter repository.MovementFilter) (string, []any) {
	if filter.Reason != "" {
		query += fmt.Sprintf(" AND reason = $%d", len(args)+1)
		args = append(args, string(filter.Reason))
	}
	if filter.EmployeeID != "" {
		query += fmt.Sprintf(" AND employee_id = $%d", len(args)+1)
		args = append(args, filter.EmployeeID)
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", len(args)+1)
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", len(args)+1)
		args = append(args, *filter.To)
	}
	return query, args
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var reason string
	var relatedID, notes, employeeID *string
	err := row.Scan(
		&m.ID, &m.InventoryItemID, &m.ChangeAmount, &m.StockAfter,
		&reason, &relatedID, &notes, &employeeID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Reason = entity.MovementReason(reason)
	if relatedID != nil {
		m.RelatedID = *relatedID
	}
	if notes != nil {
		m.Notes = *notes
	}
	if employeeID != nil {
		m.EmployeeID = *employeeID
	}
	return &m, nil
}

// nullable maps "" to NULL for optional text columns.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
