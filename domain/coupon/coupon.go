// Package coupon provides coupon value types and pure validation and
// pricing functions. Store access lives in adapters/.
package coupon

import (
	"fmt"
	"strings"
	"time"
)

// Coupon is a promotional rule (value type). Codes are always stored
// normalized to uppercase.
type Coupon struct {
	ID              string
	Code            string
	DiscountPercent int     // [1, 100]
	MinOrderAmount  float64 // threshold the pre-discount total must meet
	Description     string
	IsActive        bool
	CreatedAt       time.Time
}

// PriceResult is the outcome of applying a coupon to an order amount
// (value type). Amounts are unrounded; callers round at the wire.
type PriceResult struct {
	Coupon         Coupon
	DiscountAmount float64
	FinalAmount    float64
}

// NormalizeCode uppercases and trims a coupon code for lookup and storage.
// Coupon codes are case-insensitive by design.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateFields checks creation parameters. Returns ErrInvalidFields with a
// reason when the percent is out of [1,100] or the threshold is negative.
func ValidateFields(code string, discountPercent int, minOrderAmount float64) error {
	if NormalizeCode(code) == "" {
		return &FieldError{Reason: "code must not be empty"}
	}
	if discountPercent < 1 || discountPercent > 100 {
		return &FieldError{Reason: fmt.Sprintf("discount percent %d outside [1, 100]", discountPercent)}
	}
	if minOrderAmount < 0 {
		return &FieldError{Reason: "minimum order amount must not be negative"}
	}
	return nil
}

// DefaultDescription generates the description used when none is supplied.
func DefaultDescription(discountPercent int, minOrderAmount float64) string {
	return fmt.Sprintf("%d%% off on orders above ₹%g", discountPercent, minOrderAmount)
}

// Price applies an already looked-up coupon to an order amount (the
// pre-discount total, tax included). It is a PURE function and does not
// mutate coupon state; repeated application yields the same result.
//
// Fails with a ThresholdError carrying the minimum so callers can present
// "spend ₹N more" messaging.
func Price(c Coupon, orderAmount float64) (PriceResult, error) {
	if orderAmount < c.MinOrderAmount {
		return PriceResult{}, &ThresholdError{MinOrderAmount: c.MinOrderAmount}
	}

	discount := orderAmount * float64(c.DiscountPercent) / 100
	return PriceResult{
		Coupon:         c,
		DiscountAmount: discount,
		FinalAmount:    orderAmount - discount,
	}, nil
}
