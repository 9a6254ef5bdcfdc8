package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain/entity"
	"github.com/restopos/inventory-service/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implements InventoryItemRepository over PostgreSQL
// (usable with pool or tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository builds the adapter. Pass pool or tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, name, unit, current_stock, last_cost_per_unit, created_at, updated_at`

// Create persists a new item. Stock starts at whatever the entity carries
// (callers set zero and post INITIAL through the ledger).
func (r *InventoryItemRepo) Create(item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_items (id, name, unit, current_stock, last_cost_per_unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Unit, item.CurrentStock, item.LastCostPerUnit,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

// GetByID returns one item, or nil when absent.
func (r *InventoryItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get inventory item")
}

// GetForUpdate returns the item and locks its row until the surrounding
// transaction ends (SELECT ... FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get inventory item for update")
}

// UpdateStock writes the cached stock value. Only the ledger calls this,
// inside the transaction that inserted the movement.
func (r *InventoryItemRepo) UpdateStock(id string, newStock decimal.Decimal) error {
	query := `UPDATE inventory_items SET current_stock = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, newStock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// UpdateLastCost writes the last known purchase cost per unit.
func (r *InventoryItemRepo) UpdateLastCost(id string, cost decimal.Decimal) error {
	query := `UPDATE inventory_items SET last_cost_per_unit = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, cost)
	if err != nil {
		return fmt.Errorf("update last cost: %w", err)
	}
	return nil
}

// List returns all items ordered by name.
func (r *InventoryItemRepo) List() ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListBelow returns items whose cached stock is at or below threshold.
func (r *InventoryItemRepo) ListBelow(threshold decimal.Decimal) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE current_stock <= $1 ORDER BY current_stock`
	rows, err := r.q.Query(context.Background(), query, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low-stock items: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *InventoryItemRepo) scanOne(row pgx.Row, op string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := row.Scan(
		&item.ID, &item.Name, &item.Unit, &item.CurrentStock, &item.LastCostPerUnit,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}

func (r *InventoryItemRepo) scanMany(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		var item entity.InventoryItem
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Unit, &item.CurrentStock, &item.LastCostPerUnit,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
