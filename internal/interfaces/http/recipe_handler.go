package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/restopos/inventory-service/internal/application/dto"
	"github.com/restopos/inventory-service/internal/application/inventory"
)

// RecipeHandler serves recipe management and the availability read path.
type RecipeHandler struct {
	resolver *inventory.RecipeResolver
}

// NewRecipeHandler builds the handler.
func NewRecipeHandler(resolver *inventory.RecipeResolver) *RecipeHandler {
	return &RecipeHandler{resolver: resolver}
}

// AddLine handles POST /api/recipes.
func (h *RecipeHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddRecipeLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	recipe, err := h.resolver.AddRecipeLine(c.Context(), in.ProductID, in.InventoryItemID, in.QuantityUsed)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewRecipeResponse(recipe))
}

// RemoveLine handles DELETE /api/recipes/:id.
func (h *RecipeHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.resolver.RemoveRecipeLine(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProductRecipe handles GET /api/products/:id/recipe.
func (h *RecipeHandler) ProductRecipe(c *fiber.Ctx) error {
	recipes, err := h.resolver.ProductRecipe(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		out = append(out, dto.NewRecipeResponse(recipe))
	}
	return c.JSON(out)
}

// Availability handles GET /api/products/:id/availability?quantity=.
func (h *RecipeHandler) Availability(c *fiber.Ctx) error {
	quantity, err := strconv.ParseInt(c.Query("quantity", "1"), 10, 64)
	if err != nil || quantity <= 0 {
		return badRequest(c, "quantity must be a positive integer")
	}
	result, err := h.resolver.CheckAvailability(c.Context(), c.Params("id"), quantity)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

// Requirements handles GET /api/products/:id/requirements?quantity=.
func (h *RecipeHandler) Requirements(c *fiber.Ctx) error {
	quantity, err := strconv.ParseInt(c.Query("quantity", "1"), 10, 64)
	if err != nil || quantity <= 0 {
		return badRequest(c, "quantity must be a positive integer")
	}
	requirements, err := h.resolver.RequiredIngredients(c.Context(), c.Params("id"), quantity)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(requirements)
}
