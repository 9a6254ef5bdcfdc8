package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/restopos/inventory-service/internal/domain"
	"github.com/restopos/inventory-service/internal/domain/entity"
	"github.com/restopos/inventory-service/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implements RecipeRepository over PostgreSQL (usable with pool or tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository builds the adapter. Pass pool or tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persists a recipe row. (product_id, inventory_item_id) is unique;
// a duplicate maps to domain.ErrDuplicate.
func (r *RecipeRepo) Create(recipe *entity.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	query := `
		INSERT INTO recipes (id, product_id, inventory_item_id, quantity_used, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.ProductID, recipe.InventoryItemID, recipe.QuantityUsed, recipe.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

// GetByID returns one recipe row, or nil when absent.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	query := `
		SELECT id, product_id, inventory_item_id, quantity_used, created_at
		FROM recipes WHERE id = $1`
	var recipe entity.Recipe
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&recipe.ID, &recipe.ProductID, &recipe.InventoryItemID, &recipe.QuantityUsed, &recipe.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &recipe, nil
}

// ListByProduct lists a product's recipe rows.
func (r *RecipeRepo) ListByProduct(productID string) ([]*entity.Recipe, error) {
	query := `
		SELECT id, product_id, inventory_item_id, quantity_used, created_at
		FROM recipes WHERE product_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Recipe
	for rows.Next() {
		var recipe entity.Recipe
		if err := rows.Scan(
			&recipe.ID, &recipe.ProductID, &recipe.InventoryItemID, &recipe.QuantityUsed, &recipe.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &recipe)
	}
	return list, rows.Err()
}

// Delete removes one recipe row.
func (r *RecipeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}
