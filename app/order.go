package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tiffinbox/tiffinbox/domain/billing"
	"github.com/tiffinbox/tiffinbox/domain/order"
	"github.com/tiffinbox/tiffinbox/ports"
)

// OrderService persists and lists orders.
type OrderService struct {
	store  ports.OrderStore
	clock  ports.Clock
	idgen  ports.IDGenerator
	logger zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(store ports.OrderStore, clock ports.Clock, idgen ports.IDGenerator, logger zerolog.Logger) *OrderService {
	return &OrderService{
		store:  store,
		clock:  clock,
		idgen:  idgen,
		logger: logger,
	}
}

// CreateParams carries a client's order submission. Monetary fields arrive
// precomputed by the client and are persisted as-is; the server does not
// recompute them against the catalog or re-validate the coupon. Existing
// clients depend on this wire behavior.
type CreateParams struct {
	UserID      string
	Items       []order.Item
	Subtotal    float64
	GST         float64
	VAT         float64
	Discount    float64
	CouponCode  string
	TotalAmount float64
}

// Create persists an order. New orders start at StatusConfirmed. The item
// list must be non-empty and well-formed; everything else is accepted.
func (s *OrderService) Create(ctx context.Context, p CreateParams) (order.Order, error) {
	o := order.Order{
		ID:          s.idgen.New(),
		UserID:      p.UserID,
		Items:       p.Items,
		Subtotal:    billing.Round2(p.Subtotal),
		GST:         billing.Round2(p.GST),
		VAT:         billing.Round2(p.VAT),
		Discount:    billing.Round2(p.Discount),
		CouponCode:  p.CouponCode,
		TotalAmount: billing.Round2(p.TotalAmount),
		Status:      order.StatusConfirmed,
		CreatedAt:   s.clock.Now(),
	}

	if err := order.Validate(o); err != nil {
		return order.Order{}, err
	}

	if err := s.store.Create(ctx, o); err != nil {
		return order.Order{}, err
	}

	s.logger.Info().
		Str("order_id", o.ID).
		Str("user_id", o.UserID).
		Int("items", len(o.Items)).
		Float64("total", o.TotalAmount).
		Str("coupon", o.CouponCode).
		Msg("order placed")
	return o, nil
}

// Quote prices a set of line items with an optional already-validated
// coupon, returning the boundary-rounded breakdown. Used by clients that
// want a server-side preview of the bill before checkout.
func (s *OrderService) Quote(items []billing.LineItem, applied *billing.AppliedCoupon) (billing.Breakdown, error) {
	b, err := billing.Compute(items, applied)
	if err != nil {
		return billing.Breakdown{}, err
	}
	return b.Rounded(), nil
}

// ListByUser returns a user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	return s.store.ListByUser(ctx, userID)
}

// ListAll returns all orders, newest first, for the admin view.
func (s *OrderService) ListAll(ctx context.Context) ([]order.Order, error) {
	return s.store.ListAll(ctx)
}
