// Package order provides order value types. Orders are immutable once
// created; there is no update or cancel path.
package order

import (
	"errors"
	"time"
)

// Status is an order lifecycle state.
type Status string

// Order statuses. New orders start at StatusConfirmed.
const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Item is an ordered line, snapshotted from the catalog at order time.
type Item struct {
	FoodItemID string
	Name       string
	Quantity   int
	Price      float64
}

// Order is a persisted order record (value type). Monetary fields keep the
// wire names of the existing clients: gst is the combined standard tax and
// vat is the excise tax.
type Order struct {
	ID          string
	UserID      string
	Items       []Item
	Subtotal    float64
	GST         float64
	VAT         float64
	Discount    float64
	CouponCode  string // "" when no coupon was applied
	TotalAmount float64
	Status      Status
	CreatedAt   time.Time
}

// ErrNotFound is returned when an order does not exist.
var ErrNotFound = errors.New("order not found")

// ErrEmpty is returned when an order has no items.
var ErrEmpty = errors.New("order must contain at least one item")

// Validate checks an order before persistence.
func Validate(o Order) error {
	if len(o.Items) == 0 {
		return ErrEmpty
	}
	for _, it := range o.Items {
		if it.Quantity < 1 {
			return errors.New("item quantity must be at least 1")
		}
		if it.Price < 0 {
			return errors.New("item price must not be negative")
		}
	}
	if !o.Status.Valid() {
		return errors.New("unknown order status")
	}
	return nil
}
