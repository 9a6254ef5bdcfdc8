package repository

import "github.com/restopos/inventory-service/internal/domain/entity"

// RecipeRepository is the persistence port for product -> ingredient mappings.
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	GetByID(id string) (*entity.Recipe, error)
	ListByProduct(productID string) ([]*entity.Recipe, error)
	Delete(id string) error
}
