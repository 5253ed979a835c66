package coupon

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a code does not match any active coupon.
// Inactive coupons are deliberately indistinguishable from missing ones.
var ErrNotFound = errors.New("invalid coupon code")

// ErrDuplicate is returned when creating a coupon whose normalized code
// already exists.
var ErrDuplicate = errors.New("coupon code already exists")

// ThresholdError is returned when the order amount is below the coupon's
// minimum. It carries the threshold for client display.
type ThresholdError struct {
	MinOrderAmount float64
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("minimum order amount of ₹%g required for this coupon", e.MinOrderAmount)
}

// FieldError is returned when creation parameters are out of range.
type FieldError struct {
	Reason string
}

func (e *FieldError) Error() string {
	return "invalid coupon fields: " + e.Reason
}
