package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/restopos/inventory-service/internal/application/dto"
	"github.com/restopos/inventory-service/internal/application/inventory"
)

// InvoiceHandler serves supplier-invoice intake.
type InvoiceHandler struct {
	intake *inventory.IntakeProcessor
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(intake *inventory.IntakeProcessor) *InvoiceHandler {
	return &InvoiceHandler{intake: intake}
}

// Create handles POST /api/invoices.
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	items := make([]inventory.InvoiceItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, inventory.InvoiceItemInput{
			InventoryItemID: item.InventoryItemID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
		})
	}
	invoice, err := h.intake.CreateDraftInvoice(c.Context(), in.InvoiceNumber, in.SupplierName, items)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInvoiceResponse(invoice))
}

// AddItem handles POST /api/invoices/:id/items.
func (h *InvoiceHandler) AddItem(c *fiber.Ctx) error {
	var in dto.InvoiceItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	_, err := h.intake.AddInvoiceItem(c.Context(), c.Params("id"), inventory.InvoiceItemInput{
		InventoryItemID: in.InventoryItemID,
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	invoice, err := h.intake.Invoice(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInvoiceResponse(invoice))
}

// List handles GET /api/invoices.
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var q dto.PageRequest
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query")
	}
	if err := validate.Struct(q); err != nil {
		return badRequest(c, err.Error())
	}
	q.DefaultPage()

	invoices, err := h.intake.Invoices(c.Context(), q.Limit, q.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		out = append(out, dto.NewInvoiceResponse(invoice))
	}
	return c.JSON(out)
}

// GetByID handles GET /api/invoices/:id.
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.intake.Invoice(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewInvoiceResponse(invoice))
}

// Finalize handles POST /api/invoices/:id/finalize.
func (h *InvoiceHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeInvoiceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "invalid body")
		}
	}
	invoice, movements, err := h.intake.FinalizeInvoice(c.Context(), c.Params("id"), in.EmployeeID, in.Notes)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.FinalizeInvoiceResponse{
		Invoice:          dto.NewInvoiceResponse(invoice),
		MovementsCreated: movements,
	})
}
