package inventory

import (
	"context"
	"time"

	"github.com/restopos/inventory-service/internal/domain/repository"
)

// TxRunner executes a callback inside one database transaction, handing it
// repositories bound to that transaction. Commit on nil, rollback otherwise.
// Each Run* shape carries exactly the repositories its operation touches.
type TxRunner interface {
	// Run is the ledger shape: one movement plus the stock-cache update.
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movementRepo repository.StockMovementRepository,
	) error) error

	// RunIntake adds the invoice repository for the all-or-nothing finalize.
	RunIntake(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movementRepo repository.StockMovementRepository,
		invoiceRepo repository.IncomingInvoiceRepository,
	) error) error

	// RunWaste adds the waste-log repository so the log row and its movement
	// commit together.
	RunWaste(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movementRepo repository.StockMovementRepository,
		wasteRepo repository.WasteLogRepository,
	) error) error
}

// OrderLine is one line item of an order as reported by the Orders service.
type OrderLine struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// OrdersClient fetches order line items from the Orders service. The fetch is
// the consumption engine's only network call; implementations must bound it
// with a timeout and return domain.ErrUpstreamUnavailable on transport
// failure, domain.ErrNotFound on an unknown order.
type OrdersClient interface {
	FetchOrderItems(ctx context.Context, orderID string) ([]OrderLine, error)
}

// AvailabilityCache is an optional read-through cache for availability
// checks. Implementations may lose or expire entries at any time; the ledger
// re-checks stock authoritatively on every deduction.
type AvailabilityCache interface {
	Get(ctx context.Context, key string) (*AvailabilityResult, bool, error)
	Set(ctx context.Context, key string, value *AvailabilityResult, ttl time.Duration) error
}

// NoopAvailabilityCache disables caching; used when no redis is configured.
type NoopAvailabilityCache struct{}

func (NoopAvailabilityCache) Get(context.Context, string) (*AvailabilityResult, bool, error) {
	return nil, false, nil
}

func (NoopAvailabilityCache) Set(context.Context, string, *AvailabilityResult, time.Duration) error {
	return nil
}
