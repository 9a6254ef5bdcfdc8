package entity

import "time"

// OrderDeduction marks that recipe consumption has been run for an order.
// The unique OrderID makes deduct-for-order idempotent: a second invocation
// for the same order finds the claim and does nothing.
type OrderDeduction struct {
	ID         string
	OrderID    string // unique
	DeductedAt time.Time
}
