package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tiffinbox/tiffinbox/app"
	"github.com/tiffinbox/tiffinbox/domain/billing"
	"github.com/tiffinbox/tiffinbox/domain/coupon"
)

type couponResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discountPercent"`
	MinOrderAmount  float64   `json:"minOrderAmount"`
	Description     string    `json:"description"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toCouponResponse(c coupon.Coupon) couponResponse {
	return couponResponse{
		ID:              c.ID,
		Code:            c.Code,
		DiscountPercent: c.DiscountPercent,
		MinOrderAmount:  c.MinOrderAmount,
		Description:     c.Description,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
	}
}

func toCouponResponses(coupons []coupon.Coupon) []couponResponse {
	out := make([]couponResponse, 0, len(coupons))
	for _, c := range coupons {
		out = append(out, toCouponResponse(c))
	}
	return out
}

// ListPublicCoupons returns active coupons for the storefront, ascending by
// minimum order amount.
func (h *Handler) ListPublicCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.ListPublic(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list coupons failed")
		writeError(w, http.StatusInternalServerError, "Failed to load coupons")
		return
	}
	writeJSON(w, http.StatusOK, toCouponResponses(coupons))
}

// ListAllCoupons returns every coupon, newest first, for the admin view.
func (h *Handler) ListAllCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.ListAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list all coupons failed")
		writeError(w, http.StatusInternalServerError, "Failed to load coupons")
		return
	}
	writeJSON(w, http.StatusOK, toCouponResponses(coupons))
}

type applyCouponRequest struct {
	Code        string  `json:"code"`
	OrderAmount float64 `json:"orderAmount"`
}

// ApplyCoupon prices a code against an order amount. It is a non-binding
// preview; nothing is reserved or consumed.
func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req applyCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.coupons.Apply(r.Context(), req.Code, req.OrderAmount)
	if err != nil {
		var thresholdErr *coupon.ThresholdError
		switch {
		case errors.Is(err, coupon.ErrNotFound):
			h.countCouponRejection("not_found")
			writeError(w, http.StatusNotFound, "Invalid coupon code")
		case errors.As(err, &thresholdErr):
			h.countCouponRejection("below_minimum")
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"message":        thresholdErr.Error(),
				"minOrderAmount": thresholdErr.MinOrderAmount,
			})
		default:
			h.logger.Error().Err(err).Msg("coupon apply failed")
			writeError(w, http.StatusInternalServerError, "Failed to apply coupon")
		}
		return
	}

	if h.metrics != nil {
		h.metrics.CouponApplies.WithLabelValues(res.Coupon.Code).Inc()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Coupon applied successfully",
		"coupon": map[string]interface{}{
			"code":            res.Coupon.Code,
			"discountPercent": res.Coupon.DiscountPercent,
			"description":     res.Coupon.Description,
		},
		"discountAmount": billing.Round2(res.DiscountAmount),
		"finalAmount":    billing.Round2(res.FinalAmount),
	})
}

func (h *Handler) countCouponRejection(reason string) {
	if h.metrics != nil {
		h.metrics.CouponRejections.WithLabelValues(reason).Inc()
	}
}

type createCouponRequest struct {
	Code            string  `json:"code"`
	DiscountPercent int     `json:"discountPercent"`
	MinOrderAmount  float64 `json:"minOrderAmount"`
	Description     string  `json:"description"`
}

// CreateCoupon adds a new coupon.
func (h *Handler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req createCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.coupons.Create(r.Context(), req.Code, req.DiscountPercent, req.MinOrderAmount, req.Description)
	if err != nil {
		var fieldErr *coupon.FieldError
		switch {
		case errors.Is(err, coupon.ErrDuplicate):
			writeError(w, http.StatusConflict, "Coupon code already exists")
		case errors.As(err, &fieldErr):
			writeError(w, http.StatusBadRequest, fieldErr.Error())
		default:
			h.logger.Error().Err(err).Msg("coupon create failed")
			writeError(w, http.StatusInternalServerError, "Failed to create coupon")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toCouponResponse(c))
}

// ToggleCoupon flips a coupon's active flag.
func (h *Handler) ToggleCoupon(w http.ResponseWriter, r *http.Request) {
	c, err := h.coupons.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, app.ErrCouponNotFoundForAdmin) {
			writeError(w, http.StatusNotFound, "Coupon not found")
			return
		}
		h.logger.Error().Err(err).Msg("coupon toggle failed")
		writeError(w, http.StatusInternalServerError, "Failed to update coupon")
		return
	}

	writeJSON(w, http.StatusOK, toCouponResponse(c))
}

// DeleteCoupon removes a coupon.
func (h *Handler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	err := h.coupons.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, app.ErrCouponNotFoundForAdmin) {
			writeError(w, http.StatusNotFound, "Coupon not found")
			return
		}
		h.logger.Error().Err(err).Msg("coupon delete failed")
		writeError(w, http.StatusInternalServerError, "Failed to delete coupon")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Coupon deleted"})
}
