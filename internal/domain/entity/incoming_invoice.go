package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle of a supplier invoice. The transition
// DRAFT -> FINALIZED happens exactly once; FINALIZED invoices are immutable.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusFinalized InvoiceStatus = "FINALIZED"
)

// IncomingInvoice is a supplier delivery note. Stock enters the ledger only
// when the invoice is finalized.
type IncomingInvoice struct {
	ID            string
	InvoiceNumber string // unique
	SupplierName  string
	TotalAmount   decimal.Decimal
	Status        InvoiceStatus
	FinalizedAt   *time.Time
	CreatedAt     time.Time
	Items         []*IncomingInvoiceItem
}

// IncomingInvoiceItem is one line of a supplier invoice.
type IncomingInvoiceItem struct {
	ID              string
	InvoiceID       string
	InventoryItemID string
	Quantity        decimal.Decimal // > 0
	UnitPrice       decimal.Decimal
}
