// Package app contains application services that coordinate domain logic
// and stores.
package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tiffinbox/tiffinbox/domain/coupon"
	"github.com/tiffinbox/tiffinbox/ports"
)

// ErrCouponNotFoundForAdmin is returned when an admin toggle/delete
// references a coupon id that does not resolve.
var ErrCouponNotFoundForAdmin = errors.New("coupon not found")

// CouponService manages coupons and coupon application.
type CouponService struct {
	store  ports.CouponStore
	clock  ports.Clock
	idgen  ports.IDGenerator
	logger zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(store ports.CouponStore, clock ports.Clock, idgen ports.IDGenerator, logger zerolog.Logger) *CouponService {
	return &CouponService{
		store:  store,
		clock:  clock,
		idgen:  idgen,
		logger: logger,
	}
}

// Apply validates a code against an order amount and returns the priced
// result. The order amount is the pre-discount total, tax included.
//
// Apply is a non-binding preview: it does not mutate coupon or order state,
// and repeated calls with the same inputs return the same result. Inactive
// and unknown codes both fail with coupon.ErrNotFound.
func (s *CouponService) Apply(ctx context.Context, code string, orderAmount float64) (coupon.PriceResult, error) {
	c, err := s.store.GetActiveByCode(ctx, coupon.NormalizeCode(code))
	if err != nil {
		return coupon.PriceResult{}, err
	}

	res, err := coupon.Price(c, orderAmount)
	if err != nil {
		return coupon.PriceResult{}, err
	}

	s.logger.Debug().
		Str("code", c.Code).
		Float64("order_amount", orderAmount).
		Float64("discount", res.DiscountAmount).
		Msg("coupon applied")
	return res, nil
}

// Create stores a new coupon. The code is normalized to uppercase; a
// case-insensitive collision with an existing code fails with
// coupon.ErrDuplicate. An omitted description is generated from the
// percent and threshold.
func (s *CouponService) Create(ctx context.Context, code string, discountPercent int, minOrderAmount float64, description string) (coupon.Coupon, error) {
	if err := coupon.ValidateFields(code, discountPercent, minOrderAmount); err != nil {
		return coupon.Coupon{}, err
	}

	normalized := coupon.NormalizeCode(code)
	if _, err := s.store.GetByCode(ctx, normalized); err == nil {
		return coupon.Coupon{}, coupon.ErrDuplicate
	}

	if description == "" {
		description = coupon.DefaultDescription(discountPercent, minOrderAmount)
	}

	c := coupon.Coupon{
		ID:              s.idgen.New(),
		Code:            normalized,
		DiscountPercent: discountPercent,
		MinOrderAmount:  minOrderAmount,
		Description:     description,
		IsActive:        true,
		CreatedAt:       s.clock.Now(),
	}
	if err := s.store.Create(ctx, c); err != nil {
		return coupon.Coupon{}, err
	}

	s.logger.Info().
		Str("coupon_id", c.ID).
		Str("code", c.Code).
		Int("percent", c.DiscountPercent).
		Msg("coupon created")
	return c, nil
}

// Toggle flips a coupon's active flag.
func (s *CouponService) Toggle(ctx context.Context, id string) (coupon.Coupon, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, coupon.ErrNotFound) {
			return coupon.Coupon{}, ErrCouponNotFoundForAdmin
		}
		return coupon.Coupon{}, err
	}

	c.IsActive = !c.IsActive
	if err := s.store.Update(ctx, c); err != nil {
		return coupon.Coupon{}, err
	}

	s.logger.Info().
		Str("coupon_id", c.ID).
		Bool("is_active", c.IsActive).
		Msg("coupon toggled")
	return c, nil
}

// Delete removes a coupon.
func (s *CouponService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, coupon.ErrNotFound) {
			return ErrCouponNotFoundForAdmin
		}
		return err
	}

	s.logger.Info().Str("coupon_id", id).Msg("coupon deleted")
	return nil
}

// ListPublic returns active coupons ascending by minimum order amount, so
// the cheapest-to-unlock coupon is shown first.
func (s *CouponService) ListPublic(ctx context.Context) ([]coupon.Coupon, error) {
	return s.store.ListActive(ctx)
}

// ListAll returns every coupon, newest first, for the admin view.
func (s *CouponService) ListAll(ctx context.Context) ([]coupon.Coupon, error) {
	return s.store.ListAll(ctx)
}
