package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/restopos/inventory-service/internal/application/inventory"
)

// ConsumptionHandler serves the order-closure hook.
type ConsumptionHandler struct {
	engine *inventory.ConsumptionEngine
}

// NewConsumptionHandler builds the handler.
func NewConsumptionHandler(engine *inventory.ConsumptionEngine) *ConsumptionHandler {
	return &ConsumptionHandler{engine: engine}
}

// Deduct handles POST /api/orders/:id/deduct. Partial failures still return
// 200 with the structured result; only the upstream fetch failing (or the
// order being unknown) is an HTTP error.
func (h *ConsumptionHandler) Deduct(c *fiber.Ctx) error {
	result, err := h.engine.DeductStockForOrder(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}
