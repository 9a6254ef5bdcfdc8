package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain/entity"
)

// IncomingInvoiceRepository is the persistence port for supplier invoices.
type IncomingInvoiceRepository interface {
	Create(invoice *entity.IncomingInvoice) error
	AddItem(item *entity.IncomingInvoiceItem) error
	// GetByID loads the invoice with its items. Returns nil when absent.
	GetByID(id string) (*entity.IncomingInvoice, error)
	// GetForUpdate locks the invoice row so two concurrent finalizations
	// cannot both observe DRAFT.
	GetForUpdate(id string) (*entity.IncomingInvoice, error)
	MarkFinalized(id string, total decimal.Decimal, finalizedAt time.Time) error
	List(limit, offset int) ([]*entity.IncomingInvoice, error)
}
