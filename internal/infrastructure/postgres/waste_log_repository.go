package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/restopos/inventory-service/internal/domain/entity"
	"github.com/restopos/inventory-service/internal/domain/repository"
)

var _ repository.WasteLogRepository = (*WasteLogRepo)(nil)

// WasteLogRepo implements WasteLogRepository over PostgreSQL (usable with
// pool or tx).
type WasteLogRepo struct {
	q Querier
}

// NewWasteLogRepository builds the adapter. Pass pool or tx (Querier).
func NewWasteLogRepository(q Querier) *WasteLogRepo {
	return &WasteLogRepo{q: q}
}

// Create persists one waste record.
func (r *WasteLogRepo) Create(log *entity.WasteLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO waste_logs (id, inventory_item_id, quantity, reason, waste_date, noted_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.InventoryItemID, log.Quantity, log.Reason, log.WasteDate,
		nullable(log.NotedBy), nullable(log.Notes), log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create waste log: %w", err)
	}
	return nil
}

// ListByItem pages an item's waste records, newest first.
func (r *WasteLogRepo) ListByItem(itemID string, limit, offset int) ([]*entity.WasteLog, error) {
	query := `
		SELECT id, inventory_item_id, quantity, reason, waste_date, noted_by, notes, created_at
		FROM waste_logs WHERE inventory_item_id = $1
		ORDER BY waste_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list waste logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.WasteLog
	for rows.Next() {
		var log entity.WasteLog
		var notedBy, notes *string
		if err := rows.Scan(
			&log.ID, &log.InventoryItemID, &log.Quantity, &log.Reason, &log.WasteDate,
			&notedBy, &notes, &log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan waste log: %w", err)
		}
		if notedBy != nil {
			log.NotedBy = *notedBy
		}
		if notes != nil {
			log.Notes = *notes
		}
		list = append(list, &log)
	}
	return list, rows.Err()
}
