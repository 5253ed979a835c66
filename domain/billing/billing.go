// Package billing provides the pure order pricing engine.
// All functions are deterministic - same input always produces same output.
// This package has NO dependencies on I/O or external packages.
package billing

import "math"

// Tax rates applied at order time. GST applies to standard items and is
// presented as two equal jurisdictional halves (CGST + SGST); VAT applies
// to alcoholic items.
const (
	GSTRate = 0.05
	VATRate = 0.20
)

// LineItem is one ordered unit of a catalog item, snapshotted at order time
// (immutable value type). The engine never re-fetches catalog state.
type LineItem struct {
	ItemID      string
	Name        string
	UnitPrice   float64
	Quantity    int
	IsAlcoholic bool // true = VAT class, false = GST class
}

// Breakdown is the computed bill for a set of line items plus an optional
// coupon (value type).
type Breakdown struct {
	Subtotal          float64
	GST               float64 // total standard tax (CGST + SGST)
	CGST              float64 // GST / 2
	SGST              float64 // GST / 2
	VAT               float64
	PreDiscountTotal  float64
	DiscountPercent   int // 0 if no coupon
	DiscountAmount    float64
	FinalTotal        float64
	CouponCode        string // "" if no coupon
}

// InvalidLineItemError reports a malformed line item. Catalog and cart layers
// reject these before pricing; the engine checks defensively.
type InvalidLineItemError struct {
	ItemID string
	Reason string
}

func (e *InvalidLineItemError) Error() string {
	return "invalid line item " + e.ItemID + ": " + e.Reason
}

// AppliedCoupon carries the fields of a coupon the engine needs.
// Eligibility (active flag, minimum order amount) is validated by the caller
// against the current pre-discount total before pricing; Compute only applies
// the percentage.
type AppliedCoupon struct {
	Code            string
	DiscountPercent int
}

// Compute prices a set of line items. It is a PURE function: no side effects,
// inputs are never mutated.
//
// Intermediate values are kept unrounded; rounding to 2 decimals happens only
// at presentation/persistence boundaries via Rounded. The two taxable bases
// are accumulated as running sums in input order.
func Compute(items []LineItem, coupon *AppliedCoupon) (Breakdown, error) {
	var subtotal, gstBase, vatBase float64

	for _, it := range items {
		if it.Quantity < 1 {
			return Breakdown{}, &InvalidLineItemError{ItemID: it.ItemID, Reason: "quantity below 1"}
		}
		if it.UnitPrice < 0 {
			return Breakdown{}, &InvalidLineItemError{ItemID: it.ItemID, Reason: "negative unit price"}
		}

		lineTotal := it.UnitPrice * float64(it.Quantity)
		subtotal += lineTotal
		if it.IsAlcoholic {
			vatBase += lineTotal
		} else {
			gstBase += lineTotal
		}
	}

	b := Breakdown{Subtotal: subtotal}
	b.GST = gstBase * GSTRate
	b.CGST = b.GST / 2
	b.SGST = b.GST / 2
	b.VAT = vatBase * VATRate
	b.PreDiscountTotal = b.Subtotal + b.GST + b.VAT

	if coupon != nil {
		b.CouponCode = coupon.Code
		b.DiscountPercent = coupon.DiscountPercent
		b.DiscountAmount = b.PreDiscountTotal * float64(coupon.DiscountPercent) / 100
	}
	b.FinalTotal = b.PreDiscountTotal - b.DiscountAmount

	return b, nil
}

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rounded returns a copy of the breakdown with every monetary field rounded
// independently to 2 decimals, as wire and persisted records expect.
//
// Each field is rounded on its own, so Subtotal+GST+VAT-DiscountAmount may
// differ from FinalTotal by up to a cent. That mirrors how existing clients
// serialize bills and is kept for wire compatibility.
func (b Breakdown) Rounded() Breakdown {
	b.Subtotal = Round2(b.Subtotal)
	b.GST = Round2(b.GST)
	b.CGST = Round2(b.CGST)
	b.SGST = Round2(b.SGST)
	b.VAT = Round2(b.VAT)
	b.PreDiscountTotal = Round2(b.PreDiscountTotal)
	b.DiscountAmount = Round2(b.DiscountAmount)
	b.FinalTotal = Round2(b.FinalTotal)
	return b
}
