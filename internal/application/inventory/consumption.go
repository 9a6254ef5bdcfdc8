package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain"
	"github.com/restopos/inventory-service/internal/domain/entity"
	"github.com/restopos/inventory-service/internal/domain/repository"
	"github.com/restopos/inventory-service/pkg/logger"
)

// ConsumptionEngine runs the order-closure hook: fetch the order's line items
// from the Orders service, explode each into ingredient deductions via the
// recipe graph and post them through the ledger one by one. Order closure is
// customer-facing, so per-line failures degrade gracefully into a structured
// report instead of blocking the close.
type ConsumptionEngine struct {
	ordersClient  OrdersClient
	resolver      *RecipeResolver
	ledger        *StockLedger
	deductionRepo repository.OrderDeductionRepository
	log           *logger.Logger
}

// NewConsumptionEngine builds the engine.
func NewConsumptionEngine(
	ordersClient OrdersClient,
	resolver *RecipeResolver,
	ledger *StockLedger,
	deductionRepo repository.OrderDeductionRepository,
	log *logger.Logger,
) *ConsumptionEngine {
	return &ConsumptionEngine{
		ordersClient:  ordersClient,
		resolver:      resolver,
		ledger:        ledger,
		deductionRepo: deductionRepo,
		log:           log,
	}
}

// DeductedIngredient is one successful ledger deduction.
type DeductedIngredient struct {
	OrderItemID     string          `json:"order_item_id"`
	ProductID       string          `json:"product_id"`
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	MovementID      string          `json:"movement_id"`
	StockAfter      decimal.Decimal `json:"stock_after"`
}

// SkippedItem is an order line with no tracked ingredients. Not an error.
type SkippedItem struct {
	OrderItemID string `json:"order_item_id"`
	ProductID   string `json:"product_id"`
}

// DeductionError is one failed ingredient deduction.
type DeductionError struct {
	OrderItemID     string `json:"order_item_id"`
	ProductID       string `json:"product_id"`
	InventoryItemID string `json:"inventory_item_id,omitempty"`
	Reason          string `json:"reason"`
}

// DeductionResult is the structured outcome of one consumption run.
// DeductedAt carries the original claim time when AlreadyDeducted is set.
type DeductionResult struct {
	OrderID             string               `json:"order_id"`
	Success             bool                 `json:"success"`
	AlreadyDeducted     bool                 `json:"already_deducted"`
	DeductedAt          *time.Time           `json:"deducted_at,omitempty"`
	ItemsProcessed      int                  `json:"items_processed"`
	IngredientsDeducted []DeductedIngredient `json:"ingredients_deducted"`
	SkippedItems        []SkippedItem        `json:"skipped_items"`
	Errors              []DeductionError     `json:"errors"`
}

// DeductStockForOrder deducts the ingredients consumed by an order.
//
// The upstream fetch is the single all-or-nothing step: without the item list
// nothing can be deducted, so its failure is returned as an error. Everything
// after it is partial: a missing recipe skips the line, an insufficient
// ingredient is collected into Errors while the rest of the order keeps
// deducting, and each successful deduction commits in its own transaction.
//
// The per-order claim makes the operation idempotent: once an order has been
// claimed, a repeat call returns AlreadyDeducted without touching stock. The
// claim is written only after the fetch succeeds, so retrying after an
// upstream failure is safe.
func (e *ConsumptionEngine) DeductStockForOrder(ctx context.Context, orderID string) (*DeductionResult, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}

	lines, err := e.ordersClient.FetchOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := &DeductionResult{
		OrderID:             orderID,
		IngredientsDeducted: []DeductedIngredient{},
		SkippedItems:        []SkippedItem{},
		Errors:              []DeductionError{},
	}

	claim := &entity.OrderDeduction{OrderID: orderID, DeductedAt: time.Now()}
	if err := e.deductionRepo.Create(claim); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			result.Success = true
			result.AlreadyDeducted = true
			if existing, err := e.deductionRepo.GetByOrderID(orderID); err == nil && existing != nil {
				result.DeductedAt = &existing.DeductedAt
			}
			e.log.Info().Str("order_id", orderID).Msg("order already deducted, skipping")
			return result, nil
		}
		return nil, err
	}

	for _, line := range lines {
		result.ItemsProcessed++

		requirements, err := e.resolver.RequiredIngredients(ctx, line.ProductID, line.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNoRecipe) {
				result.SkippedItems = append(result.SkippedItems, SkippedItem{
					OrderItemID: line.ID,
					ProductID:   line.ProductID,
				})
				continue
			}
			result.Errors = append(result.Errors, DeductionError{
				OrderItemID: line.ID,
				ProductID:   line.ProductID,
				Reason:      err.Error(),
			})
			continue
		}

		for _, req := range requirements {
			movement, err := e.ledger.RecordMovement(ctx, MovementInput{
				ItemID:    req.InventoryItemID,
				Delta:     req.NeededQuantity.Neg(),
				Reason:    entity.ReasonSale,
				RelatedID: line.ID,
			})
			if err != nil {
				// one missing ingredient must not block the rest of the order
				result.Errors = append(result.Errors, DeductionError{
					OrderItemID:     line.ID,
					ProductID:       line.ProductID,
					InventoryItemID: req.InventoryItemID,
					Reason:          err.Error(),
				})
				e.log.Warn().
					Str("order_id", orderID).
					Str("order_item_id", line.ID).
					Str("inventory_item_id", req.InventoryItemID).
					Err(err).
					Msg("ingredient deduction failed")
				continue
			}
			result.IngredientsDeducted = append(result.IngredientsDeducted, DeductedIngredient{
				OrderItemID:     line.ID,
				ProductID:       line.ProductID,
				InventoryItemID: req.InventoryItemID,
				Quantity:        req.NeededQuantity,
				MovementID:      movement.ID,
				StockAfter:      movement.StockAfter,
			})
		}
	}

	result.Success = len(result.Errors) == 0
	if !result.Success {
		e.log.Warn().
			Str("order_id", orderID).
			Int("errors", len(result.Errors)).
			Msg("order consumption finished with errors")
	}
	return result, nil
}
