package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain"
	"github.com/restopos/inventory-service/internal/domain/entity"
	"github.com/restopos/inventory-service/internal/domain/repository"
)

// IntakeProcessor manages supplier invoices and turns them into ledger
// movements. Finalization is all-or-nothing: an invoice is a single financial
// document, so either every line posts or none does.
type IntakeProcessor struct {
	txRunner    TxRunner
	invoiceRepo repository.IncomingInvoiceRepository
	itemRepo    repository.InventoryItemRepository
}

// NewIntakeProcessor builds the processor.
func NewIntakeProcessor(
	txRunner TxRunner,
	invoiceRepo repository.IncomingInvoiceRepository,
	itemRepo repository.InventoryItemRepository,
) *IntakeProcessor {
	return &IntakeProcessor{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		itemRepo:    itemRepo,
	}
}

// InvoiceItemInput is one line of a draft invoice.
type InvoiceItemInput struct {
	InventoryItemID string
	Quantity        decimal.Decimal // > 0
	UnitPrice       decimal.Decimal // >= 0
}

// CreateDraftInvoice registers a supplier invoice in DRAFT, optionally with
// initial lines. No stock moves until FinalizeInvoice.
func (p *IntakeProcessor) CreateDraftInvoice(ctx context.Context, invoiceNumber, supplierName string, items []InvoiceItemInput) (*entity.IncomingInvoice, error) {
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	supplierName = strings.TrimSpace(supplierName)
	if invoiceNumber == "" || supplierName == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range items {
		if err := p.validateItemInput(item); err != nil {
			return nil, err
		}
	}

	invoice := &entity.IncomingInvoice{
		InvoiceNumber: invoiceNumber,
		SupplierName:  supplierName,
		TotalAmount:   decimal.Zero,
		Status:        entity.InvoiceStatusDraft,
		CreatedAt:     time.Now(),
	}
	if err := p.invoiceRepo.Create(invoice); err != nil {
		return nil, err
	}
	for _, item := range items {
		line := &entity.IncomingInvoiceItem{
			InvoiceID:       invoice.ID,
			InventoryItemID: item.InventoryItemID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
		}
		if err := p.invoiceRepo.AddItem(line); err != nil {
			return nil, err
		}
		invoice.Items = append(invoice.Items, line)
	}
	return invoice, nil
}

// AddInvoiceItem appends a line to a DRAFT invoice. FINALIZED invoices are
// immutable.
func (p *IntakeProcessor) AddInvoiceItem(ctx context.Context, invoiceID string, input InvoiceItemInput) (*entity.IncomingInvoiceItem, error) {
	if err := p.validateItemInput(input); err != nil {
		return nil, err
	}
	invoice, err := p.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.Status != entity.InvoiceStatusDraft {
		return nil, domain.ErrInvoiceAlreadyFinalized
	}
	line := &entity.IncomingInvoiceItem{
		InvoiceID:       invoiceID,
		InventoryItemID: input.InventoryItemID,
		Quantity:        input.Quantity,
		UnitPrice:       input.UnitPrice,
	}
	if err := p.invoiceRepo.AddItem(line); err != nil {
		return nil, err
	}
	return line, nil
}

// Invoice loads one invoice with its items.
func (p *IntakeProcessor) Invoice(ctx context.Context, id string) (*entity.IncomingInvoice, error) {
	invoice, err := p.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

// Invoices pages the registered invoices, newest first.
func (p *IntakeProcessor) Invoices(ctx context.Context, limit, offset int) ([]*entity.IncomingInvoice, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return p.invoiceRepo.List(limit, offset)
}

// FinalizeInvoice posts every invoice line to the ledger (INTAKE, related to
// the invoice), updates each item's last cost, recomputes the invoice total
// and flips the status to FINALIZED — all inside one transaction. Any line
// failure rolls back everything and leaves the invoice DRAFT.
func (p *IntakeProcessor) FinalizeInvoice(ctx context.Context, invoiceID, employeeID, notes string) (*entity.IncomingInvoice, int, error) {
	var finalized *entity.IncomingInvoice
	movementsCreated := 0

	err := p.txRunner.RunIntake(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movementRepo repository.StockMovementRepository,
		invoiceRepo repository.IncomingInvoiceRepository,
	) error {
		invoice, err := invoiceRepo.GetForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.Status != entity.InvoiceStatusDraft {
			return domain.ErrInvoiceAlreadyFinalized
		}
		if len(invoice.Items) == 0 {
			return domain.ErrInvoiceHasNoItems
		}

		total := decimal.Zero
		for _, line := range invoice.Items {
			if _, err := RecordMovementInTx(itemRepo, movementRepo, MovementInput{
				ItemID:     line.InventoryItemID,
				Delta:      line.Quantity,
				Reason:     entity.ReasonIntake,
				RelatedID:  invoice.ID,
				Notes:      notes,
				EmployeeID: employeeID,
			}); err != nil {
				return err
			}
			if err := itemRepo.UpdateLastCost(line.InventoryItemID, line.UnitPrice); err != nil {
				return err
			}
			total = total.Add(line.Quantity.Mul(line.UnitPrice))
			movementsCreated++
		}

		now := time.Now()
		if err := invoiceRepo.MarkFinalized(invoice.ID, total, now); err != nil {
			return err
		}
		invoice.Status = entity.InvoiceStatusFinalized
		invoice.TotalAmount = total
		invoice.FinalizedAt = &now
		finalized = invoice
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return finalized, movementsCreated, nil
}

func (p *IntakeProcessor) validateItemInput(input InvoiceItemInput) error {
	if input.InventoryItemID == "" || !input.Quantity.IsPositive() || input.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	item, err := p.itemRepo.GetByID(input.InventoryItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return nil
}
