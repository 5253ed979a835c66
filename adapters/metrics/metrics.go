// Package metrics provides Prometheus metrics collection for tiffinbox.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for tiffinbox.
type Collector struct {
	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Auth metrics
	AuthFailures *prometheus.CounterVec

	// Order metrics
	OrdersTotal      prometheus.Counter
	OrderAmountTotal prometheus.Counter

	// Coupon metrics
	CouponApplies    *prometheus.CounterVec
	CouponRejections *prometheus.CounterVec
}

// New creates a new metrics collector with all metrics registered.
func New() *Collector {
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tiffinbox",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tiffinbox",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path", "status"},
		),

		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tiffinbox",
				Name:      "auth_failures_total",
				Help:      "Total number of authentication failures",
			},
			[]string{"reason"},
		),

		OrdersTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "tiffinbox",
				Name:      "orders_total",
				Help:      "Total number of orders placed",
			},
		),
		OrderAmountTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "tiffinbox",
				Name:      "order_amount_total",
				Help:      "Cumulative order totals in rupees",
			},
		),

		CouponApplies: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tiffinbox",
				Name:      "coupon_applies_total",
				Help:      "Total successful coupon applications",
			},
			[]string{"code"},
		),
		CouponRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tiffinbox",
				Name:      "coupon_rejections_total",
				Help:      "Total rejected coupon applications",
			},
			[]string{"reason"},
		),
	}
}
