package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain"
	"github.com/restopos/inventory-service/internal/domain/entity"
	"github.com/restopos/inventory-service/internal/domain/repository"
)

var _ repository.IncomingInvoiceRepository = (*IncomingInvoiceRepo)(nil)

// IncomingInvoiceRepo implements IncomingInvoiceRepository over PostgreSQL
// (usable with pool or tx).
type IncomingInvoiceRepo struct {
	q Querier
}

// NewIncomingInvoiceRepository builds the adapter. Pass pool or tx (Querier).
func NewIncomingInvoiceRepository(q Querier) *IncomingInvoiceRepo {
	return &IncomingInvoiceRepo{q: q}
}

const invoiceColumns = `id, invoice_number, supplier_name, total_amount, status, finalized_at, created_at`

// Create persists a new invoice. invoice_number is unique; a duplicate maps
// to domain.ErrDuplicate.
func (r *IncomingInvoiceRepo) Create(invoice *entity.IncomingInvoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO incoming_invoices (id, invoice_number, supplier_name, total_amount, status, finalized_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.InvoiceNumber, invoice.SupplierName, invoice.TotalAmount,
		string(invoice.Status), invoice.FinalizedAt, invoice.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

// AddItem persists one invoice line.
func (r *IncomingInvoiceRepo) AddItem(item *entity.IncomingInvoiceItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO incoming_invoice_items (id, invoice_id, inventory_item_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.InventoryItemID, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("add invoice item: %w", err)
	}
	return nil
}

// GetByID loads the invoice with its items, or nil when absent.
func (r *IncomingInvoiceRepo) GetByID(id string) (*entity.IncomingInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM incoming_invoices WHERE id = $1`
	return r.loadOne(query, id, "get invoice")
}

// GetForUpdate loads the invoice with its items and locks the invoice row, so
// two concurrent finalizations cannot both observe DRAFT.
func (r *IncomingInvoiceRepo) GetForUpdate(id string) (*entity.IncomingInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM incoming_invoices WHERE id = $1 FOR UPDATE`
	return r.loadOne(query, id, "get invoice for update")
}

// MarkFinalized flips DRAFT -> FINALIZED and stores the recomputed total.
func (r *IncomingInvoiceRepo) MarkFinalized(id string, total decimal.Decimal, finalizedAt time.Time) error {
	query := `
		UPDATE incoming_invoices
		SET status = $2, total_amount = $3, finalized_at = $4
		WHERE id = $1 AND status = $5`
	tag, err := r.q.Exec(context.Background(), query,
		id, string(entity.InvoiceStatusFinalized), total, finalizedAt, string(entity.InvoiceStatusDraft),
	)
	if err != nil {
		return fmt.Errorf("finalize invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceAlreadyFinalized
	}
	return nil
}

// List pages invoices, newest first, without items.
func (r *IncomingInvoiceRepo) List(limit, offset int) ([]*entity.IncomingInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM incoming_invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.IncomingInvoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, invoice)
	}
	return list, rows.Err()
}

func (r *IncomingInvoiceRepo) loadOne(query, id, op string) (*entity.IncomingInvoice, error) {
	invoice, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	items, err := r.listItems(invoice.ID)
	if err != nil {
		return nil, err
	}
	invoice.Items = items
	return invoice, nil
}

func (r *IncomingInvoiceRepo) listItems(invoiceID string) ([]*entity.IncomingInvoiceItem, error) {
	query := `
		SELECT id, invoice_id, inventory_item_id, quantity, unit_price
		FROM incoming_invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var items []*entity.IncomingInvoiceItem
	for rows.Next() {
		var item entity.IncomingInvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.InventoryItemID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.IncomingInvoice, error) {
	var invoice entity.IncomingInvoice
	var status string
	err := row.Scan(
		&invoice.ID, &invoice.InvoiceNumber, &invoice.SupplierName, &invoice.TotalAmount,
		&status, &invoice.FinalizedAt, &invoice.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	invoice.Status = entity.InvoiceStatus(status)
	return &invoice, nil
}
