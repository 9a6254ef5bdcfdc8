package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/restopos/inventory-service/internal/application/dto"
	"github.com/restopos/inventory-service/internal/application/inventory"
	"github.com/restopos/inventory-service/internal/domain/entity"
	"github.com/restopos/inventory-service/internal/domain/repository"
)

// InventoryHandler serves items, movement history and the two manual
// movement entry points (corrections and waste).
type InventoryHandler struct {
	items       *inventory.ItemService
	ledger      *inventory.StockLedger
	corrections *inventory.CorrectionHandler
	waste       *inventory.WasteRecorder
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(
	items *inventory.ItemService,
	ledger *inventory.StockLedger,
	corrections *inventory.CorrectionHandler,
	waste *inventory.WasteRecorder,
) *InventoryHandler {
	return &InventoryHandler{items: items, ledger: ledger, corrections: corrections, waste: waste}
}

// CreateItem handles POST /api/items.
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	item, err := h.items.CreateItem(c.Context(), inventory.CreateItemInput{
		Name:            in.Name,
		Unit:            in.Unit,
		OpeningStock:    in.OpeningStock,
		LastCostPerUnit: in.LastCostPerUnit,
		EmployeeID:      in.EmployeeID,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewItemResponse(item))
}

// ListItems handles GET /api/items.
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.items.Items(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewItemResponse(item))
	}
	return c.JSON(out)
}

// LowStock handles GET /api/items/low-stock?threshold=.
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	threshold, err := decimal.NewFromString(c.Query("threshold", "0"))
	if err != nil {
		return badRequest(c, "threshold must be a number")
	}
	items, err := h.items.LowStock(c.Context(), threshold)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewItemResponse(item))
	}
	return c.JSON(out)
}

// GetItem handles GET /api/items/:id.
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.items.Item(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

// History handles GET /api/items/:id/movements.
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query")
	}
	if err := validate.Struct(q); err != nil {
		return badRequest(c, err.Error())
	}
	q.DefaultPage()

	filter := repository.MovementFilter{
		Reason:     entity.MovementReason(q.Reason),
		EmployeeID: q.EmployeeID,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	var err error
	if filter.From, err = parseDate(q.From, false); err != nil {
		return badRequest(c, "invalid from date")
	}
	if filter.To, err = parseDate(q.To, true); err != nil {
		return badRequest(c, "invalid to date")
	}

	page, err := h.ledger.History(c.Context(), c.Params("id"), filter)
	if err != nil {
		return errorResponse(c, err)
	}
	movements := make([]dto.MovementResponse, 0, len(page.Movements))
	for _, m := range page.Movements {
		movements = append(movements, dto.NewMovementResponse(m))
	}
	return c.JSON(dto.HistoryResponse{
		Movements: movements,
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: page.Total},
	})
}

// GetMovement handles GET /api/movements/:id.
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	movement, err := h.ledger.Movement(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewMovementResponse(movement))
}

// Summary handles GET /api/items/:id/movements/summary.
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	var q dto.SummaryQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query")
	}
	if err := validate.Struct(q); err != nil {
		return badRequest(c, err.Error())
	}
	from, err := parseDate(q.From, false)
	if err != nil {
		return badRequest(c, "invalid from date")
	}
	to, err := parseDate(q.To, true)
	if err != nil {
		return badRequest(c, "invalid to date")
	}

	itemID := c.Params("id")
	total, err := h.ledger.SumByReason(c.Context(), itemID, entity.MovementReason(q.Reason), from, to)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.SummaryResponse{InventoryItemID: itemID, Reason: q.Reason, Total: total})
}

// CreateCorrection handles POST /api/corrections.
func (h *InventoryHandler) CreateCorrection(c *fiber.Ctx) error {
	var in dto.CreateCorrectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	movement, err := h.corrections.CreateCorrection(c.Context(), in.InventoryItemID, in.Delta, in.Notes, in.EmployeeID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(movement))
}

// RecordWaste handles POST /api/waste.
func (h *InventoryHandler) RecordWaste(c *fiber.Ctx) error {
	var in dto.RecordWasteRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	var wasteDate time.Time
	if in.WasteDate != "" {
		parsed, err := time.Parse("2006-01-02", in.WasteDate)
		if err != nil {
			return badRequest(c, "invalid waste date")
		}
		wasteDate = parsed
	}
	wasteLog, movement, err := h.waste.RecordWaste(c.Context(), inventory.WasteInput{
		ItemID:     in.InventoryItemID,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		WasteDate:  wasteDate,
		NotedBy:    in.NotedBy,
		Notes:      in.Notes,
		EmployeeID: in.EmployeeID,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.WasteResponse{
		WasteLogID: wasteLog.ID,
		Movement:   dto.NewMovementResponse(movement),
	})
}

// WasteHistory handles GET /api/items/:id/waste.
func (h *InventoryHandler) WasteHistory(c *fiber.Ctx) error {
	var q dto.PageRequest
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query")
	}
	if err := validate.Struct(q); err != nil {
		return badRequest(c, err.Error())
	}
	q.DefaultPage()

	logs, err := h.waste.WasteHistory(c.Context(), c.Params("id"), q.Limit, q.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.WasteLogResponse, 0, len(logs))
	for _, log := range logs {
		out = append(out, dto.NewWasteLogResponse(log))
	}
	return c.JSON(out)
}

// parseDate parses a YYYY-MM-DD query value. endOfDay pushes "to" bounds to
// the last instant of the day so the range is inclusive.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
