package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restopos/inventory-service/internal/application/inventory"
	"github.com/restopos/inventory-service/internal/domain"
	"github.com/restopos/inventory-service/internal/domain/entity"
)

func newIntake(s *memStore) *inventory.IntakeProcessor {
	return inventory.NewIntakeProcessor(memTxRunner{s}, memInvoiceRepo{s}, memItemRepo{s})
}

func TestFinalizeInvoicePostsIntake(t *testing.T) {
	store := newMemStore()
	flour := store.addItem("Flour", "kg", dec("10"))
	intake := newIntake(store)
	ctx := context.Background()

	invoice, err := intake.CreateDraftInvoice(ctx, "INV-2026-001", "Metro Kft.", []inventory.InvoiceItemInput{
		{InventoryItemID: flour, Quantity: dec("5"), UnitPrice: dec("1.2")},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusDraft, invoice.Status)
	assert.True(t, store.items[flour].CurrentStock.Equal(dec("10")), "draft must not move stock")

	finalized, movements, err := intake.FinalizeInvoice(ctx, invoice.ID, "emp-1", "weekly delivery")
	require.NoError(t, err)
	assert.Equal(t, 1, movements)
	assert.Equal(t, entity.InvoiceStatusFinalized, finalized.Status)
	require.NotNil(t, finalized.FinalizedAt)
	assert.True(t, finalized.TotalAmount.Equal(dec("6")))

	assert.True(t, store.items[flour].CurrentStock.Equal(dec("15")))
	require.NotNil(t, store.items[flour].LastCostPerUnit)
	assert.True(t, store.items[flour].LastCostPerUnit.Equal(dec("1.2")))

	logged := store.movementsFor(flour)
	require.Len(t, logged, 1)
	assert.Equal(t, entity.ReasonIntake, logged[0].Reason)
	assert.Equal(t, invoice.ID, logged[0].RelatedID)
	assert.True(t, logged[0].ChangeAmount.Equal(dec("5")))
	assert.True(t, logged[0].StockAfter.Equal(dec("15")))
	assert.Equal(t, "emp-1", logged[0].EmployeeID)
}

func TestFinalizeInvoiceTwice(t *testing.T) {
	store := newMemStore()
	flour := store.addItem("Flour", "kg", dec("10"))
	intake := newIntake(store)
	ctx := context.Background()

	invoice, err := intake.CreateDraftInvoice(ctx, "INV-1", "Metro Kft.", []inventory.InvoiceItemInput{
		{InventoryItemID: flour, Quantity: dec("5"), UnitPrice: dec("1")},
	})
	require.NoError(t, err)

	_, _, err = intake.FinalizeInvoice(ctx, invoice.ID, "emp-1", "")
	require.NoError(t, err)

	_, _, err = intake.FinalizeInvoice(ctx, invoice.ID, "emp-1", "")
	require.ErrorIs(t, err, domain.ErrInvoiceAlreadyFinalized)
	assert.True(t, store.items[flour].CurrentStock.Equal(dec("15")), "second call must not double-post")
	require.Len(t, store.movementsFor(flour), 1)
}

func TestFinalizeInvoiceWithoutItems(t *testing.T) {
	store := newMemStore()
	intake := newIntake(store)
	ctx := context.Background()

	invoice, err := intake.CreateDraftInvoice(ctx, "INV-1", "Metro Kft.", nil)
	require.NoError(t, err)

	_, _, err = intake.FinalizeInvoice(ctx, invoice.ID, "emp-1", "")
	require.ErrorIs(t, err, domain.ErrInvoiceHasNoItems)
}

func TestFinalizeInvoiceUnknown(t *testing.T) {
	intake := newIntake(newMemStore())

	_, _, err := intake.FinalizeInvoice(context.Background(), "missing", "emp-1", "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// An invoice line pointing at a since-deleted item fails inside the
// transaction; none of the other lines may stick.
func TestFinalizeInvoiceRollsBackOnBadLine(t *testing.T) {
	store := newMemStore()
	flour := store.addItem("Flour", "kg", dec("10"))
	ghost := store.addItem("Ghost", "kg", dec("0"))
	intake := newIntake(store)
	ctx := context.Background()

	invoice, err := intake.CreateDraftInvoice(ctx, "INV-1", "Metro Kft.", []inventory.InvoiceItemInput{
		{InventoryItemID: flour, Quantity: dec("5"), UnitPrice: dec("1")},
		{InventoryItemID: ghost, Quantity: dec("2"), UnitPrice: dec("1")},
	})
	require.NoError(t, err)
	delete(store.items, ghost)

	_, _, err = intake.FinalizeInvoice(ctx, invoice.ID, "emp-1", "")
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.True(t, store.items[flour].CurrentStock.Equal(dec("10")), "first line must roll back")
	assert.Empty(t, store.movementsFor(flour))
	reloaded, err := intake.Invoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusDraft, reloaded.Status)
}

func TestAddInvoiceItemOnFinalizedInvoice(t *testing.T) {
	store := newMemStore()
	flour := store.addItem("Flour", "kg", dec("10"))
	intake := newIntake(store)
	ctx := context.Background()

	invoice, err := intake.CreateDraftInvoice(ctx, "INV-1", "Metro Kft.", []inventory.InvoiceItemInput{
		{InventoryItemID: flour, Quantity: dec("5"), UnitPrice: dec("1")},
	})
	require.NoError(t, err)
	_, _, err = intake.FinalizeInvoice(ctx, invoice.ID, "emp-1", "")
	require.NoError(t, err)

	_, err = intake.AddInvoiceItem(ctx, invoice.ID, inventory.InvoiceItemInput{
		InventoryItemID: flour, Quantity: dec("1"), UnitPrice: dec("1"),
	})
	require.ErrorIs(t, err, domain.ErrInvoiceAlreadyFinalized)
}

func TestCreateDraftInvoiceValidation(t *testing.T) {
	store := newMemStore()
	flour := store.addItem("Flour", "kg", dec("10"))
	intake := newIntake(store)
	ctx := context.Background()

	_, err := intake.CreateDraftInvoice(ctx, "", "Metro Kft.", nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = intake.CreateDraftInvoice(ctx, "INV-1", "Metro Kft.", []inventory.InvoiceItemInput{
		{InventoryItemID: flour, Quantity: dec("0"), UnitPrice: dec("1")},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = intake.CreateDraftInvoice(ctx, "INV-1", "Metro Kft.", []inventory.InvoiceItemInput{
		{InventoryItemID: "missing", Quantity: dec("1"), UnitPrice: dec("1")},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	// invoice numbers are unique
	_, err = intake.CreateDraftInvoice(ctx, "INV-1", "Metro Kft.", nil)
	require.NoError(t, err)
	_, err = intake.CreateDraftInvoice(ctx, "INV-1", "Metro Kft.", nil)
	require.ErrorIs(t, err, domain.ErrDuplicate)
}
