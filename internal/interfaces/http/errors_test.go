package http

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restopos/inventory-service/internal/application/dto"
	"github.com/restopos/inventory-service/internal/domain"
)

func TestErrorResponseMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrNoRecipe, fiber.StatusNotFound, "NO_RECIPE"},
		{domain.ErrInvoiceAlreadyFinalized, fiber.StatusConflict, "INVOICE_FINALIZED"},
		{domain.ErrInvoiceHasNoItems, fiber.StatusBadRequest, "INVOICE_EMPTY"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrUpstreamUnavailable, fiber.StatusBadGateway, "ORDERS_UNAVAILABLE"},
		// wrapped errors must still match
		{fmt.Errorf("deduct: %w", domain.ErrInsufficientStock), fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{fmt.Errorf("boom"), fiber.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			return errorResponse(c, tc.err)
		})

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())

		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, tc.code, body.Code, tc.err.Error())
		_ = resp.Body.Close()
	}
}
