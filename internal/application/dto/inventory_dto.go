package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain/entity"
)

// CreateItemRequest body for POST /api/items.
type CreateItemRequest struct {
	Name            string           `json:"name" validate:"required"`
	Unit            string           `json:"unit" validate:"required"`
	OpeningStock    decimal.Decimal  `json:"opening_stock"`
	LastCostPerUnit *decimal.Decimal `json:"last_cost_per_unit,omitempty"`
	EmployeeID      string           `json:"employee_id,omitempty"`
}

// ItemResponse one inventory item with its cached stock.
type ItemResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Unit            string           `json:"unit"`
	CurrentStock    decimal.Decimal  `json:"current_stock"`
	LastCostPerUnit *decimal.Decimal `json:"last_cost_per_unit,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// NewItemResponse maps an entity.
func NewItemResponse(item *entity.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Unit:            item.Unit,
		CurrentStock:    item.CurrentStock,
		LastCostPerUnit: item.LastCostPerUnit,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// MovementResponse one ledger entry.
type MovementResponse struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventory_item_id"`
	ChangeAmount    decimal.Decimal `json:"change_amount"`
	StockAfter      decimal.Decimal `json:"stock_after"`
	Reason          string          `json:"reason"`
	RelatedID       string          `json:"related_id,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	EmployeeID      string          `json:"employee_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewMovementResponse maps an entity.
func NewMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		InventoryItemID: m.InventoryItemID,
		ChangeAmount:    m.ChangeAmount,
		StockAfter:      m.StockAfter,
		Reason:          string(m.Reason),
		RelatedID:       m.RelatedID,
		Notes:           m.Notes,
		EmployeeID:      m.EmployeeID,
		CreatedAt:       m.CreatedAt,
	}
}

// HistoryQuery filters for GET /api/items/:id/movements.
type HistoryQuery struct {
	PageRequest
	Reason     string `query:"reason" validate:"omitempty,oneof=INTAKE SALE WASTE CORRECTION INITIAL"`
	EmployeeID string `query:"employee_id"`
	From       string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To         string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// HistoryResponse one page of movement history.
type HistoryResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// SummaryQuery filters for GET /api/items/:id/movements/summary.
type SummaryQuery struct {
	Reason string `query:"reason" validate:"required,oneof=INTAKE SALE WASTE CORRECTION INITIAL"`
	From   string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// SummaryResponse per-reason aggregation of change_amount.
type SummaryResponse struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Reason          string          `json:"reason"`
	Total           decimal.Decimal `json:"total"`
}

// CreateCorrectionRequest body for POST /api/corrections.
type CreateCorrectionRequest struct {
	InventoryItemID string          `json:"inventory_item_id" validate:"required"`
	Delta           decimal.Decimal `json:"delta"`
	Notes           string          `json:"notes" validate:"required"`
	EmployeeID      string          `json:"employee_id,omitempty"`
}

// RecordWasteRequest body for POST /api/waste.
type RecordWasteRequest struct {
	InventoryItemID string          `json:"inventory_item_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
	Reason          string          `json:"reason" validate:"required"`
	WasteDate       string          `json:"waste_date" validate:"omitempty,datetime=2006-01-02"`
	NotedBy         string          `json:"noted_by,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	EmployeeID      string          `json:"employee_id,omitempty"`
}

// WasteResponse result of recording waste.
type WasteResponse struct {
	WasteLogID string           `json:"waste_log_id"`
	Movement   MovementResponse `json:"movement"`
}

// WasteLogResponse one persisted waste record.
type WasteLogResponse struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Reason          string          `json:"reason"`
	WasteDate       time.Time       `json:"waste_date"`
	NotedBy         string          `json:"noted_by,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewWasteLogResponse maps an entity.
func NewWasteLogResponse(log *entity.WasteLog) WasteLogResponse {
	return WasteLogResponse{
		ID:              log.ID,
		InventoryItemID: log.InventoryItemID,
		Quantity:        log.Quantity,
		Reason:          log.Reason,
		WasteDate:       log.WasteDate,
		NotedBy:         log.NotedBy,
		Notes:           log.Notes,
		CreatedAt:       log.CreatedAt,
	}
}
