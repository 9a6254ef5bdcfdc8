package repository

import "github.com/restopos/inventory-service/internal/domain/entity"

// WasteLogRepository is the persistence port for waste records.
type WasteLogRepository interface {
	Create(log *entity.WasteLog) error
	ListByItem(itemID string, limit, offset int) ([]*entity.WasteLog, error)
}
