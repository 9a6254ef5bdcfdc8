package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain/entity"
)

// InvoiceItemRequest one line of a draft invoice.
type InvoiceItemRequest struct {
	InventoryItemID string          `json:"inventory_item_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest body for POST /api/invoices.
type CreateInvoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number" validate:"required"`
	SupplierName  string               `json:"supplier_name" validate:"required"`
	Items         []InvoiceItemRequest `json:"items" validate:"omitempty,dive"`
}

// FinalizeInvoiceRequest body for POST /api/invoices/:id/finalize.
type FinalizeInvoiceRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// InvoiceItemResponse one persisted invoice line.
type InvoiceItemResponse struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// InvoiceResponse one supplier invoice with its items.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	SupplierName  string                `json:"supplier_name"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	Status        string                `json:"status"`
	FinalizedAt   *time.Time            `json:"finalized_at,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	Items         []InvoiceItemResponse `json:"items"`
}

// NewInvoiceResponse maps an entity.
func NewInvoiceResponse(invoice *entity.IncomingInvoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, InvoiceItemResponse{
			ID:              item.ID,
			InventoryItemID: item.InventoryItemID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
		})
	}
	return InvoiceResponse{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		SupplierName:  invoice.SupplierName,
		TotalAmount:   invoice.TotalAmount,
		Status:        string(invoice.Status),
		FinalizedAt:   invoice.FinalizedAt,
		CreatedAt:     invoice.CreatedAt,
		Items:         items,
	}
}

// FinalizeInvoiceResponse result of a finalize call.
type FinalizeInvoiceResponse struct {
	Invoice          InvoiceResponse `json:"invoice"`
	MovementsCreated int             `json:"movements_created"`
}
