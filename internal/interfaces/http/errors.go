package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/restopos/inventory-service/internal/application/dto"
	"github.com/restopos/inventory-service/internal/domain"
)

// validate checks request DTOs against their struct tags.
var validate = validator.New()

// errorResponse maps domain errors to HTTP statuses. Every handler funnels
// its failures through here so the mapping lives in one place.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "insufficient stock"})
	case errors.Is(err, domain.ErrNoRecipe):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_RECIPE", Message: "product has no recipe"})
	case errors.Is(err, domain.ErrInvoiceAlreadyFinalized):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVOICE_FINALIZED", Message: "invoice already finalized"})
	case errors.Is(err, domain.ErrInvoiceHasNoItems):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVOICE_EMPTY", Message: "invoice has no items"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "duplicate resource"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid input"})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ORDERS_UNAVAILABLE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// badRequest is the response for unparseable bodies and failed validation.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: message})
}
