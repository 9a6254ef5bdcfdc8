package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound                = errors.New("resource not found")
	ErrInvalidInput            = errors.New("invalid input")
	ErrDuplicate               = errors.New("duplicate resource")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrNoRecipe                = errors.New("product has no recipe")
	ErrInvoiceAlreadyFinalized = errors.New("invoice already finalized")
	ErrInvoiceHasNoItems       = errors.New("invoice has no items")
	ErrUpstreamUnavailable     = errors.New("orders service unavailable")
)
