package billing_test

import (
	"errors"
	"math"
	"testing"

	"github.com/tiffinbox/tiffinbox/domain/billing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompute_StandardItemsOnly(t *testing.T) {
	items := []billing.LineItem{
		{ItemID: "dosa", UnitPrice: 80, Quantity: 2},
		{ItemID: "chai", UnitPrice: 30, Quantity: 1},
	}

	b, err := billing.Compute(items, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approxEqual(b.Subtotal, 190) {
		t.Errorf("subtotal = %f, want 190", b.Subtotal)
	}
	if !approxEqual(b.GST, 9.5) {
		t.Errorf("gst = %f, want 9.5", b.GST)
	}
	if !approxEqual(b.CGST, 4.75) || !approxEqual(b.SGST, 4.75) {
		t.Errorf("cgst/sgst = %f/%f, want 4.75/4.75", b.CGST, b.SGST)
	}
	if !approxEqual(b.VAT, 0) {
		t.Errorf("vat = %f, want 0", b.VAT)
	}
	if !approxEqual(b.FinalTotal, 199.5) {
		t.Errorf("final = %f, want 199.5", b.FinalTotal)
	}
}

func TestCompute_AlcoholicItemsOnly(t *testing.T) {
	items := []billing.LineItem{
		{ItemID: "beer", UnitPrice: 180, Quantity: 2, IsAlcoholic: true},
	}

	b, err := billing.Compute(items, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approxEqual(b.GST, 0) {
		t.Errorf("gst = %f, want 0", b.GST)
	}
	if !approxEqual(b.VAT, 72) {
		t.Errorf("vat = %f, want 72", b.VAT)
	}
	if !approxEqual(b.FinalTotal, 432) {
		t.Errorf("final = %f, want 432", b.FinalTotal)
	}
}

func TestCompute_MixedCartWithCoupon(t *testing.T) {
	// 1000 of standard food plus 500 of alcohol with a 20% coupon.
	items := []billing.LineItem{
		{ItemID: "biryani", UnitPrice: 250, Quantity: 4},
		{ItemID: "wine", UnitPrice: 500, Quantity: 1, IsAlcoholic: true},
	}
	coupon := &billing.AppliedCoupon{Code: "SAVE20", DiscountPercent: 20}

	b, err := billing.Compute(items, coupon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approxEqual(b.Subtotal, 1500) {
		t.Errorf("subtotal = %f, want 1500", b.Subtotal)
	}
	if !approxEqual(b.GST, 50) {
		t.Errorf("gst = %f, want 50", b.GST)
	}
	if !approxEqual(b.CGST, 25) || !approxEqual(b.SGST, 25) {
		t.Errorf("cgst/sgst = %f/%f, want 25/25", b.CGST, b.SGST)
	}
	if !approxEqual(b.VAT, 100) {
		t.Errorf("vat = %f, want 100", b.VAT)
	}
	if !approxEqual(b.PreDiscountTotal, 1650) {
		t.Errorf("pre-discount total = %f, want 1650", b.PreDiscountTotal)
	}
	if !approxEqual(b.DiscountAmount, 330) {
		t.Errorf("discount = %f, want 330", b.DiscountAmount)
	}
	if !approxEqual(b.FinalTotal, 1320) {
		t.Errorf("final = %f, want 1320", b.FinalTotal)
	}
	if b.CouponCode != "SAVE20" || b.DiscountPercent != 20 {
		t.Errorf("coupon fields = %q/%d, want SAVE20/20", b.CouponCode, b.DiscountPercent)
	}
}

func TestCompute_EmptyCart(t *testing.T) {
	b, err := billing.Compute(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.FinalTotal != 0 || b.Subtotal != 0 {
		t.Errorf("empty cart should price to zero, got %+v", b)
	}
}

func TestCompute_DiscountAppliesToTaxedTotal(t *testing.T) {
	// The discount base is subtotal plus tax, not the bare subtotal.
	items := []billing.LineItem{
		{ItemID: "thali", UnitPrice: 100, Quantity: 1},
	}
	coupon := &billing.AppliedCoupon{Code: "TEN", DiscountPercent: 10}

	b, err := billing.Compute(items, coupon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approxEqual(b.DiscountAmount, 10.5) {
		t.Errorf("discount = %f, want 10.5 (10%% of 105)", b.DiscountAmount)
	}
	if !approxEqual(b.FinalTotal, 94.5) {
		t.Errorf("final = %f, want 94.5", b.FinalTotal)
	}
}

func TestCompute_InvalidItems(t *testing.T) {
	tests := []struct {
		name string
		item billing.LineItem
	}{
		{"zero quantity", billing.LineItem{ItemID: "x", UnitPrice: 10, Quantity: 0}},
		{"negative quantity", billing.LineItem{ItemID: "x", UnitPrice: 10, Quantity: -2}},
		{"negative price", billing.LineItem{ItemID: "x", UnitPrice: -10, Quantity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := billing.Compute([]billing.LineItem{tt.item}, nil)
			var lineErr *billing.InvalidLineItemError
			if !errors.As(err, &lineErr) {
				t.Fatalf("want InvalidLineItemError, got %v", err)
			}
			if lineErr.ItemID != "x" {
				t.Errorf("item id = %q, want x", lineErr.ItemID)
			}
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	items := []billing.LineItem{
		{ItemID: "a", UnitPrice: 33.33, Quantity: 3},
		{ItemID: "b", UnitPrice: 99.99, Quantity: 1, IsAlcoholic: true},
	}
	coupon := &billing.AppliedCoupon{Code: "C", DiscountPercent: 15}

	first, err := billing.Compute(items, coupon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := billing.Compute(items, coupon)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{10.006, 10.01},
		{10.004, 10.0},
		{0, 0},
		{1650, 1650},
		{94.4999999, 94.5},
	}

	for _, tt := range tests {
		if got := billing.Round2(tt.in); !approxEqual(got, tt.want) {
			t.Errorf("Round2(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestRounded_FieldsRoundIndependently(t *testing.T) {
	// 3 x 33.33 standard: subtotal 99.99, gst 4.9995, total 104.9895.
	// After per-field rounding the parts need not sum to the final exactly.
	items := []billing.LineItem{
		{ItemID: "a", UnitPrice: 33.33, Quantity: 3},
	}

	b, err := billing.Compute(items, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := b.Rounded()

	if !approxEqual(r.Subtotal, 99.99) {
		t.Errorf("subtotal = %f, want 99.99", r.Subtotal)
	}
	if !approxEqual(r.GST, 5.0) {
		t.Errorf("gst = %f, want 5.00", r.GST)
	}
	if !approxEqual(r.FinalTotal, 104.99) {
		t.Errorf("final = %f, want 104.99", r.FinalTotal)
	}
	// The original breakdown is untouched
	if approxEqual(b.GST, r.GST) {
		t.Errorf("expected unrounded gst to differ from rounded, got %f", b.GST)
	}
}
