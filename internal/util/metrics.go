package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_added_total",
		Help: "Total quantity of items added to carts",
	})

	CartItemsRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_removed_total",
		Help: "Total number of cart lines removed",
	})

	CartsClearedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carts_cleared_total",
		Help: "Total number of carts cleared",
	})

	CartsRecoveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carts_recovered_total",
		Help: "Total number of corrupt persisted carts discarded on load",
	})

	CouponsAppliedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coupons_applied_total",
		Help: "Total number of coupons applied",
	}, []string{"code"})

	CouponsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coupons_rejected_total",
		Help: "Total number of invalid coupon codes rejected",
	})

	CheckoutAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Total number of checkout submissions started",
	})

	CheckoutSuccessTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_success_total",
		Help: "Total number of checkouts acknowledged by the warehouse",
	})

	CheckoutFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Total number of failed checkouts",
	}, []string{"reason"})

	CheckoutLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_latency_seconds",
		Help:    "Latency of warehouse submission",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
