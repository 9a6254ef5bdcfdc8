package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/domain/entity"
)

// AddRecipeLineRequest body for POST /api/recipes.
type AddRecipeLineRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	InventoryItemID string          `json:"inventory_item_id" validate:"required"`
	QuantityUsed    decimal.Decimal `json:"quantity_used"`
}

// RecipeResponse one recipe row.
type RecipeResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	InventoryItemID string          `json:"inventory_item_id"`
	QuantityUsed    decimal.Decimal `json:"quantity_used"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewRecipeResponse maps an entity.
func NewRecipeResponse(r *entity.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:              r.ID,
		ProductID:       r.ProductID,
		InventoryItemID: r.InventoryItemID,
		QuantityUsed:    r.QuantityUsed,
		CreatedAt:       r.CreatedAt,
	}
}
