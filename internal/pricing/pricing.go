package pricing

import (
	"math"

	"cart-service/internal/models"
)

// Default business rules: free shipping strictly above 2000, flat 99 otherwise
const (
	DefaultFreeShippingThreshold = int64(2000)
	DefaultShippingFlatRate      = int64(99)
)

// Calculator computes order summaries from cart lines and an optional
// coupon. Summarize is pure: identical inputs always yield identical
// output and nothing is stored.
type Calculator struct {
	freeShippingThreshold int64
	shippingFlatRate      int64
}

// NewCalculator creates a calculator with the given shipping rules
func NewCalculator(freeShippingThreshold, shippingFlatRate int64) *Calculator {
	return &Calculator{
		freeShippingThreshold: freeShippingThreshold,
		shippingFlatRate:      shippingFlatRate,
	}
}

// NewDefaultCalculator creates a calculator with the default shipping rules
func NewDefaultCalculator() *Calculator {
	return NewCalculator(DefaultFreeShippingThreshold, DefaultShippingFlatRate)
}

// Summarize derives subtotal, discount, shipping and total for the given
// lines. coupon may be nil. The discount rounds half away from zero on a
// non-negative value. Shipping is zero for an empty subtotal and for
// subtotals strictly greater than the free-shipping threshold; a subtotal
// of exactly the threshold still pays the flat rate. The total is clamped
// at zero.
func (calc *Calculator) Summarize(items []models.CartItem, coupon *models.Coupon) models.OrderSummary {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Price * int64(item.Quantity)
	}

	var discount int64
	var couponCode string
	if coupon != nil {
		discount = int64(math.Round(float64(subtotal) * coupon.Rate))
		couponCode = coupon.Code
	}

	var shipping int64
	if subtotal > 0 && subtotal <= calc.freeShippingThreshold {
		shipping = calc.shippingFlatRate
	}

	total := subtotal - discount + shipping
	if total < 0 {
		total = 0
	}

	return models.OrderSummary{
		Subtotal:   subtotal,
		Discount:   discount,
		Shipping:   shipping,
		Total:      total,
		CouponCode: couponCode,
	}
}
