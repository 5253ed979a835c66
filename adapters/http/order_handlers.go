package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/tiffinbox/tiffinbox/app"
	"github.com/tiffinbox/tiffinbox/domain/order"
)

type orderItemPayload struct {
	FoodItemID string  `json:"foodItemId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type createOrderRequest struct {
	Items       []orderItemPayload `json:"items"`
	Subtotal    float64            `json:"subtotal"`
	GST         float64            `json:"gst"`
	VAT         float64            `json:"vat"`
	Discount    float64            `json:"discount"`
	CouponCode  string             `json:"couponCode"`
	TotalAmount float64            `json:"totalAmount"`
}

type orderResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"userId"`
	Items       []orderItemPayload `json:"items"`
	Subtotal    float64            `json:"subtotal"`
	GST         float64            `json:"gst"`
	VAT         float64            `json:"vat"`
	Discount    float64            `json:"discount"`
	CouponCode  string             `json:"couponCode,omitempty"`
	TotalAmount float64            `json:"totalAmount"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func toOrderResponse(o order.Order) orderResponse {
	items := make([]orderItemPayload, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemPayload{
			FoodItemID: it.FoodItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
		})
	}
	return orderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		Items:       items,
		Subtotal:    o.Subtotal,
		GST:         o.GST,
		VAT:         o.VAT,
		Discount:    o.Discount,
		CouponCode:  o.CouponCode,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}
}

func toOrderResponses(orders []order.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

// CreateOrder persists a checkout submission for the authenticated user.
// Monetary fields come from the client and are stored as submitted.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r.Context())

	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, order.Item{
			FoodItemID: it.FoodItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
		})
	}

	o, err := h.orders.Create(r.Context(), app.CreateParams{
		UserID:      claims.UserID,
		Items:       items,
		Subtotal:    req.Subtotal,
		GST:         req.GST,
		VAT:         req.VAT,
		Discount:    req.Discount,
		CouponCode:  req.CouponCode,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		if errors.Is(err, order.ErrEmpty) {
			writeError(w, http.StatusBadRequest, "Order must contain at least one item")
			return
		}
		h.logger.Error().Err(err).Msg("order create failed")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.OrdersTotal.Inc()
		h.metrics.OrderAmountTotal.Add(o.TotalAmount)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully",
		"order":   toOrderResponse(o),
	})
}

// ListMyOrders returns the authenticated user's orders, newest first.
func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r.Context())

	orders, err := h.orders.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error().Err(err).Msg("list orders failed")
		writeError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

// ListAllOrders returns every order, newest first, for the admin view.
func (h *Handler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list all orders failed")
		writeError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}
