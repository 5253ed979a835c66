// Package http provides the REST API handlers.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tiffinbox/tiffinbox/adapters/auth"
	"github.com/tiffinbox/tiffinbox/adapters/metrics"
	"github.com/tiffinbox/tiffinbox/app"
	"github.com/tiffinbox/tiffinbox/domain/identity"
)

// Handler provides the REST API endpoints.
type Handler struct {
	auth    *app.AuthService
	menu    *app.MenuService
	coupons *app.CouponService
	orders  *app.OrderService
	tokens  *auth.TokenService
	metrics *metrics.Collector
	logger  zerolog.Logger
}

// Deps contains dependencies for the API handler.
type Deps struct {
	Auth    *app.AuthService
	Menu    *app.MenuService
	Coupons *app.CouponService
	Orders  *app.OrderService
	Tokens  *auth.TokenService
	Metrics *metrics.Collector // nil when metrics are disabled
	Logger  zerolog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		auth:    deps.Auth,
		menu:    deps.Menu,
		coupons: deps.Coupons,
		orders:  deps.Orders,
		tokens:  deps.Tokens,
		metrics: deps.Metrics,
		logger:  deps.Logger,
	}
}

// Router returns the API router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if h.metrics != nil {
		r.Use(h.metricsMiddleware)
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/signup", h.Signup)
		r.Post("/auth/login", h.Login)
		r.Get("/menu/categories", h.ListCategories)
		r.Get("/menu/items", h.ListItems)
		r.Get("/coupons", h.ListPublicCoupons)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)

			r.Put("/auth/profile", h.UpdateProfile)
			r.Put("/auth/password", h.ChangePassword)
			r.Post("/coupons/apply", h.ApplyCoupon)
			r.Post("/orders", h.CreateOrder)
			r.Get("/orders/mine", h.ListMyOrders)

			// Admin endpoints
			r.Group(func(r chi.Router) {
				r.Use(h.RequireAdmin)

				r.Post("/menu/categories", h.CreateCategory)
				r.Put("/menu/categories/{id}", h.UpdateCategory)
				r.Delete("/menu/categories/{id}", h.DeleteCategory)
				r.Post("/menu/items", h.CreateItem)
				r.Put("/menu/items/{id}", h.UpdateItem)
				r.Delete("/menu/items/{id}", h.DeleteItem)

				r.Get("/coupons/all", h.ListAllCoupons)
				r.Post("/coupons", h.CreateCoupon)
				r.Delete("/coupons/{id}", h.DeleteCoupon)
				r.Put("/coupons/{id}/toggle", h.ToggleCoupon)

				r.Get("/orders", h.ListAllOrders)
			})
		})
	})

	return r
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Restaurant API is running"})
}

// -----------------------------------------------------------------------------
// Authentication middleware
// -----------------------------------------------------------------------------

type ctxKey string

const claimsKey ctxKey = "claims"

// withClaims adds JWT claims to the context.
func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// getClaims retrieves JWT claims from context.
func getClaims(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// AuthMiddleware validates the bearer token and stores its claims in the
// request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			h.countAuthFailure("missing_token")
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := h.tokens.ValidateToken(token)
		if err != nil {
			h.countAuthFailure("invalid_token")
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// RequireAdmin rejects non-admin callers. Must run after AuthMiddleware.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := getClaims(r.Context())
		if claims == nil || claims.Role != identity.RoleAdmin {
			h.countAuthFailure("not_admin")
			writeError(w, http.StatusForbidden, "Access denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) countAuthFailure(reason string) {
	if h.metrics != nil {
		h.metrics.AuthFailures.WithLabelValues(reason).Inc()
	}
}

// -----------------------------------------------------------------------------
// Metrics middleware
// -----------------------------------------------------------------------------

func (h *Handler) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = r.URL.Path
		}
		status := statusLabel(ww.Status())
		h.metrics.RequestsTotal.WithLabelValues(r.Method, pattern, status).Inc()
		h.metrics.RequestDuration.WithLabelValues(r.Method, pattern, status).
			Observe(time.Since(start).Seconds())
	})
}

func statusLabel(code int) string {
	if code == 0 {
		code = http.StatusOK
	}
	return strconv.Itoa(code)
}

// -----------------------------------------------------------------------------
// JSON helpers
// -----------------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError emits the {message} error shape existing clients parse.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
