package inventory_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/application/inventory"
	"github.com/restopos/inventory-service/internal/domain"
	"github.com/restopos/inventory-service/internal/domain/entity"
	"github.com/restopos/inventory-service/internal/domain/repository"
	"github.com/restopos/inventory-service/pkg/logger"
)

// memStore is a single in-memory backing store shared by all fake
// repositories, with snapshot/restore so the fake TxRunner can roll back.
type memStore struct {
	mu         sync.Mutex
	seq        int
	items      map[string]entity.InventoryItem
	movements  []entity.StockMovement
	recipes    map[string]entity.Recipe
	invoices   map[string]entity.IncomingInvoice
	wasteLogs  []entity.WasteLog
	deductions map[string]entity.OrderDeduction // keyed by order id
}

func newMemStore() *memStore {
	return &memStore{
		items:      map[string]entity.InventoryItem{},
		recipes:    map[string]entity.Recipe{},
		invoices:   map[string]entity.IncomingInvoice{},
		deductions: map[string]entity.OrderDeduction{},
	}
}

func (s *memStore) nextID() string {
	s.seq++
	return fmt.Sprintf("id-%d", s.seq)
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	snap.seq = s.seq
	for k, v := range s.items {
		snap.items[k] = v
	}
	snap.movements = append([]entity.StockMovement(nil), s.movements...)
	for k, v := range s.recipes {
		snap.recipes[k] = v
	}
	for k, v := range s.invoices {
		v.Items = append([]*entity.IncomingInvoiceItem(nil), v.Items...)
		snap.invoices[k] = v
	}
	snap.wasteLogs = append([]entity.WasteLog(nil), s.wasteLogs...)
	for k, v := range s.deductions {
		snap.deductions[k] = v
	}
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.seq = snap.seq
	s.items = snap.items
	s.movements = snap.movements
	s.recipes = snap.recipes
	s.invoices = snap.invoices
	s.wasteLogs = snap.wasteLogs
	s.deductions = snap.deductions
}

// addItem seeds an item and returns its id.
func (s *memStore) addItem(name, unit string, stock decimal.Decimal) string {
	id := s.nextID()
	now := time.Now()
	s.items[id] = entity.InventoryItem{
		ID: id, Name: name, Unit: unit, CurrentStock: stock, CreatedAt: now, UpdatedAt: now,
	}
	return id
}

// addRecipe seeds a recipe row.
func (s *memStore) addRecipe(productID, itemID string, perUnit decimal.Decimal) string {
	id := s.nextID()
	s.recipes[id] = entity.Recipe{
		ID: id, ProductID: productID, InventoryItemID: itemID, QuantityUsed: perUnit, CreatedAt: time.Now(),
	}
	return id
}

// movementsFor filters the log by item.
func (s *memStore) movementsFor(itemID string) []entity.StockMovement {
	var out []entity.StockMovement
	for _, m := range s.movements {
		if m.InventoryItemID == itemID {
			out = append(out, m)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// repositories

type memItemRepo struct{ s *memStore }

func (r memItemRepo) Create(item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = r.s.nextID()
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r memItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r memItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r memItemRepo) UpdateStock(id string, newStock decimal.Decimal) error {
	item, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.CurrentStock = newStock
	item.UpdatedAt = time.Now()
	r.s.items[id] = item
	return nil
}

func (r memItemRepo) UpdateLastCost(id string, cost decimal.Decimal) error {
	item, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.LastCostPerUnit = &cost
	r.s.items[id] = item
	return nil
}

func (r memItemRepo) List() ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for id := range r.s.items {
		item := r.s.items[id]
		out = append(out, &item)
	}
	return out, nil
}

func (r memItemRepo) ListBelow(threshold decimal.Decimal) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for id := range r.s.items {
		item := r.s.items[id]
		if item.CurrentStock.LessThanOrEqual(threshold) {
			out = append(out, &item)
		}
	}
	return out, nil
}

type memMovementRepo struct{ s *memStore }

func (r memMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = r.s.nextID()
	}
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

func (r memMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for i := range r.s.movements {
		if r.s.movements[i].ID == id {
			m := r.s.movements[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (r memMovementRepo) matches(m entity.StockMovement, itemID string, filter repository.MovementFilter) bool {
	if m.InventoryItemID != itemID {
		return false
	}
	if filter.Reason != "" && m.Reason != filter.Reason {
		return false
	}
	if filter.EmployeeID != "" && m.EmployeeID != filter.EmployeeID {
		return false
	}
	if filter.From != nil && m.CreatedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && m.CreatedAt.After(*filter.To) {
		return false
	}
	return true
}

func (r memMovementRepo) ListByItem(itemID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var all []*entity.StockMovement
	// newest first
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if r.matches(m, itemID, filter) {
			all = append(all, &m)
		}
	}
	if filter.Offset >= len(all) {
		return nil, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, nil
}

func (r memMovementRepo) CountByItem(itemID string, filter repository.MovementFilter) (int64, error) {
	var n int64
	for _, m := range r.s.movements {
		if r.matches(m, itemID, filter) {
			n++
		}
	}
	return n, nil
}

func (r memMovementRepo) SumByReason(itemID string, reason entity.MovementReason, from, to *time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	filter := repository.MovementFilter{Reason: reason, From: from, To: to}
	for _, m := range r.s.movements {
		if r.matches(m, itemID, filter) {
			sum = sum.Add(m.ChangeAmount)
		}
	}
	return sum, nil
}

type memRecipeRepo struct{ s *memStore }

func (r memRecipeRepo) Create(recipe *entity.Recipe) error {
	for _, existing := range r.s.recipes {
		if existing.ProductID == recipe.ProductID && existing.InventoryItemID == recipe.InventoryItemID {
			return domain.ErrDuplicate
		}
	}
	if recipe.ID == "" {
		recipe.ID = r.s.nextID()
	}
	r.s.recipes[recipe.ID] = *recipe
	return nil
}

func (r memRecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	recipe, ok := r.s.recipes[id]
	if !ok {
		return nil, nil
	}
	return &recipe, nil
}

func (r memRecipeRepo) ListByProduct(productID string) ([]*entity.Recipe, error) {
	var ids []string
	for id, recipe := range r.s.recipes {
		if recipe.ProductID == productID {
			ids = append(ids, id)
		}
	}
	// stable order for assertions
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if strings.Compare(ids[j], ids[i]) < 0 {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	var out []*entity.Recipe
	for _, id := range ids {
		recipe := r.s.recipes[id]
		out = append(out, &recipe)
	}
	return out, nil
}

func (r memRecipeRepo) Delete(id string) error {
	delete(r.s.recipes, id)
	return nil
}

type memInvoiceRepo struct{ s *memStore }

func (r memInvoiceRepo) Create(invoice *entity.IncomingInvoice) error {
	for _, existing := range r.s.invoices {
		if existing.InvoiceNumber == invoice.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	if invoice.ID == "" {
		invoice.ID = r.s.nextID()
	}
	stored := *invoice
	stored.Items = append([]*entity.IncomingInvoiceItem(nil), invoice.Items...)
	r.s.invoices[invoice.ID] = stored
	return nil
}

func (r memInvoiceRepo) AddItem(item *entity.IncomingInvoiceItem) error {
	invoice, ok := r.s.invoices[item.InvoiceID]
	if !ok {
		return domain.ErrNotFound
	}
	if item.ID == "" {
		item.ID = r.s.nextID()
	}
	stored := *item
	invoice.Items = append(invoice.Items, &stored)
	r.s.invoices[item.InvoiceID] = invoice
	return nil
}

func (r memInvoiceRepo) GetByID(id string) (*entity.IncomingInvoice, error) {
	invoice, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	out := invoice
	out.Items = append([]*entity.IncomingInvoiceItem(nil), invoice.Items...)
	return &out, nil
}

func (r memInvoiceRepo) GetForUpdate(id string) (*entity.IncomingInvoice, error) {
	return r.GetByID(id)
}

func (r memInvoiceRepo) MarkFinalized(id string, total decimal.Decimal, finalizedAt time.Time) error {
	invoice, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	if invoice.Status != entity.InvoiceStatusDraft {
		return domain.ErrInvoiceAlreadyFinalized
	}
	invoice.Status = entity.InvoiceStatusFinalized
	invoice.TotalAmount = total
	invoice.FinalizedAt = &finalizedAt
	r.s.invoices[id] = invoice
	return nil
}

func (r memInvoiceRepo) List(limit, offset int) ([]*entity.IncomingInvoice, error) {
	var out []*entity.IncomingInvoice
	for id := range r.s.invoices {
		invoice := r.s.invoices[id]
		out = append(out, &invoice)
	}
	return out, nil
}

type memWasteRepo struct{ s *memStore }

func (r memWasteRepo) Create(log *entity.WasteLog) error {
	if log.ID == "" {
		log.ID = r.s.nextID()
	}
	r.s.wasteLogs = append(r.s.wasteLogs, *log)
	return nil
}

func (r memWasteRepo) ListByItem(itemID string, limit, offset int) ([]*entity.WasteLog, error) {
	var out []*entity.WasteLog
	for i := range r.s.wasteLogs {
		if r.s.wasteLogs[i].InventoryItemID == itemID {
			log := r.s.wasteLogs[i]
			out = append(out, &log)
		}
	}
	return out, nil
}

type memDeductionRepo struct{ s *memStore }

func (r memDeductionRepo) Create(deduction *entity.OrderDeduction) error {
	if _, ok := r.s.deductions[deduction.OrderID]; ok {
		return domain.ErrDuplicate
	}
	if deduction.ID == "" {
		deduction.ID = r.s.nextID()
	}
	r.s.deductions[deduction.OrderID] = *deduction
	return nil
}

func (r memDeductionRepo) GetByOrderID(orderID string) (*entity.OrderDeduction, error) {
	deduction, ok := r.s.deductions[orderID]
	if !ok {
		return nil, nil
	}
	return &deduction, nil
}

// ---------------------------------------------------------------------------
// transaction runner

// memTxRunner mimics commit/rollback by snapshotting the store before the
// callback and restoring it when the callback fails.
type memTxRunner struct{ s *memStore }

func (r memTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(memItemRepo{r.s}, memMovementRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func (r memTxRunner) RunIntake(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movementRepo repository.StockMovementRepository,
	invoiceRepo repository.IncomingInvoiceRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(memItemRepo{r.s}, memMovementRepo{r.s}, memInvoiceRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func (r memTxRunner) RunWaste(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movementRepo repository.StockMovementRepository,
	wasteRepo repository.WasteLogRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(memItemRepo{r.s}, memMovementRepo{r.s}, memWasteRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// collaborators

// fakeOrdersClient serves canned order lines or a canned error.
type fakeOrdersClient struct {
	lines map[string][]inventory.OrderLine
	err   error
}

func (c fakeOrdersClient) FetchOrderItems(ctx context.Context, orderID string) ([]inventory.OrderLine, error) {
	if c.err != nil {
		return nil, c.err
	}
	lines, ok := c.lines[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return lines, nil
}

// countingCache records hits and stores for cache behavior assertions.
type countingCache struct {
	entries map[string]*inventory.AvailabilityResult
	gets    int
	hits    int
	sets    int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: map[string]*inventory.AvailabilityResult{}}
}

func (c *countingCache) Get(_ context.Context, key string) (*inventory.AvailabilityResult, bool, error) {
	c.gets++
	if result, ok := c.entries[key]; ok {
		c.hits++
		return result, true, nil
	}
	return nil, false, nil
}

func (c *countingCache) Set(_ context.Context, key string, value *inventory.AvailabilityResult, _ time.Duration) error {
	c.sets++
	c.entries[key] = value
	return nil
}

// ---------------------------------------------------------------------------
// assembly helpers

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newLedger(s *memStore) *inventory.StockLedger {
	return inventory.NewStockLedger(memTxRunner{s}, memItemRepo{s}, memMovementRepo{s})
}

func newResolver(s *memStore) *inventory.RecipeResolver {
	return inventory.NewRecipeResolver(memRecipeRepo{s}, memItemRepo{s}, nil, 0)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
