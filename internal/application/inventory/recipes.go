package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain"
	"github.com/restopos/inventory-service/internal/domain/entity"
	"github.com/restopos/inventory-service/internal/domain/repository"
)

// RecipeResolver answers what a product consumes and whether enough stock is
// on hand to sell it. Pure read path against the ledger; it never mutates
// stock.
type RecipeResolver struct {
	recipeRepo repository.RecipeRepository
	itemRepo   repository.InventoryItemRepository
	cache      AvailabilityCache
	cacheTTL   time.Duration
}

// NewRecipeResolver builds the resolver. cache may be NoopAvailabilityCache.
func NewRecipeResolver(
	recipeRepo repository.RecipeRepository,
	itemRepo repository.InventoryItemRepository,
	cache AvailabilityCache,
	cacheTTL time.Duration,
) *RecipeResolver {
	if cache == nil {
		cache = NoopAvailabilityCache{}
	}
	return &RecipeResolver{
		recipeRepo: recipeRepo,
		itemRepo:   itemRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// IngredientRequirement is one ingredient's share of a requested quantity of
// a product.
type IngredientRequirement struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	NeededQuantity  decimal.Decimal `json:"needed_quantity"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
}

// RequiredIngredients scales the product's recipe to the requested quantity
// and annotates each line with the ingredient's current stock. Fails with
// domain.ErrNoRecipe when the product has no recipe rows.
func (r *RecipeResolver) RequiredIngredients(ctx context.Context, productID string, quantity int64) ([]IngredientRequirement, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	recipes, err := r.recipeRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, domain.ErrNoRecipe
	}

	qty := decimal.NewFromInt(quantity)
	requirements := make([]IngredientRequirement, 0, len(recipes))
	for _, recipe := range recipes {
		item, err := r.itemRepo.GetByID(recipe.InventoryItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			// Recipe rows cascade-delete with their item; a dangling row
			// means a concurrent delete. Treat as no requirement.
			continue
		}
		requirements = append(requirements, IngredientRequirement{
			InventoryItemID: item.ID,
			Name:            item.Name,
			Unit:            item.Unit,
			NeededQuantity:  recipe.QuantityUsed.Mul(qty),
			CurrentStock:    item.CurrentStock,
		})
	}
	return requirements, nil
}

// MissingIngredient is an ingredient whose stock falls short of the scaled
// requirement.
type MissingIngredient struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	NeededQuantity  decimal.Decimal `json:"needed_quantity"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	ShortBy         decimal.Decimal `json:"short_by"`
}

// AvailabilityResult reports whether quantity units of a product can be made
// from the stock on hand, and how many could be at most.
type AvailabilityResult struct {
	ProductID   string              `json:"product_id"`
	Quantity    int64               `json:"quantity"`
	Available   bool                `json:"available"`
	MaxQuantity int64               `json:"max_quantity"`
	Missing     []MissingIngredient `json:"missing,omitempty"`
}

// CheckAvailability computes availability for the requested quantity.
// MaxQuantity is the minimum over all recipe lines of
// floor(current_stock / quantity_per_unit). Results may be served from the
// TTL cache; staleness is bounded by the TTL and the ledger re-checks stock
// on every deduction anyway.
func (r *RecipeResolver) CheckAvailability(ctx context.Context, productID string, quantity int64) (*AvailabilityResult, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	key := fmt.Sprintf("availability:%s:%d", productID, quantity)
	if cached, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	}

	requirements, err := r.RequiredIngredients(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}

	result := &AvailabilityResult{
		ProductID:   productID,
		Quantity:    quantity,
		Available:   true,
		MaxQuantity: -1,
	}
	perUnit := decimal.NewFromInt(quantity)
	for _, req := range requirements {
		if req.CurrentStock.LessThan(req.NeededQuantity) {
			result.Available = false
			result.Missing = append(result.Missing, MissingIngredient{
				InventoryItemID: req.InventoryItemID,
				Name:            req.Name,
				Unit:            req.Unit,
				NeededQuantity:  req.NeededQuantity,
				CurrentStock:    req.CurrentStock,
				ShortBy:         req.NeededQuantity.Sub(req.CurrentStock),
			})
		}
		quantityPerUnit := req.NeededQuantity.Div(perUnit)
		maxForLine := req.CurrentStock.Div(quantityPerUnit).Floor().IntPart()
		if result.MaxQuantity < 0 || maxForLine < result.MaxQuantity {
			result.MaxQuantity = maxForLine
		}
	}
	if result.MaxQuantity < 0 {
		result.MaxQuantity = 0
	}

	// best effort; a failed cache write does not affect the answer
	_ = r.cache.Set(ctx, key, result, r.cacheTTL)
	return result, nil
}

// AddRecipeLine registers how much of one ingredient a single unit of the
// product consumes. (product, item) is unique.
func (r *RecipeResolver) AddRecipeLine(ctx context.Context, productID, itemID string, quantityUsed decimal.Decimal) (*entity.Recipe, error) {
	if productID == "" || itemID == "" || !quantityUsed.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	item, err := r.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	recipe := &entity.Recipe{
		ProductID:       productID,
		InventoryItemID: itemID,
		QuantityUsed:    quantityUsed,
		CreatedAt:       time.Now(),
	}
	if err := r.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// RemoveRecipeLine deletes one recipe row.
func (r *RecipeResolver) RemoveRecipeLine(ctx context.Context, id string) error {
	recipe, err := r.recipeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domain.ErrNotFound
	}
	return r.recipeRepo.Delete(id)
}

// ProductRecipe lists the recipe rows of a product.
func (r *RecipeResolver) ProductRecipe(ctx context.Context, productID string) ([]*entity.Recipe, error) {
	return r.recipeRepo.ListByProduct(productID)
}
