package pricing

import (
	"testing"

	"cart-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func itemsWithSubtotal(subtotal int64) []models.CartItem {
	return []models.CartItem{
		{ProductID: 1, Name: "Diwali Diya Set", Price: subtotal, Quantity: 1},
	}
}

func TestSummarizeEmptyCart(t *testing.T) {
	calc := NewDefaultCalculator()

	summary := calc.Summarize(nil, nil)

	assert.Equal(t, int64(0), summary.Subtotal)
	assert.Equal(t, int64(0), summary.Discount)
	assert.Equal(t, int64(0), summary.Shipping)
	assert.Equal(t, int64(0), summary.Total)
}

func TestSummarizeEmptyCartWithCoupon(t *testing.T) {
	calc := NewDefaultCalculator()
	c := &models.Coupon{Code: "FESTIVE20", Rate: 0.20}

	summary := calc.Summarize(nil, c)

	assert.Equal(t, int64(0), summary.Subtotal)
	assert.Equal(t, int64(0), summary.Discount)
	assert.Equal(t, int64(0), summary.Shipping)
	assert.Equal(t, int64(0), summary.Total)
}

func TestSummarizeShippingThreshold(t *testing.T) {
	calc := NewDefaultCalculator()

	tests := []struct {
		name     string
		subtotal int64
		shipping int64
	}{
		{"zero subtotal ships nothing", 0, 0},
		{"below threshold pays flat rate", 1999, 99},
		{"exactly at threshold still pays", 2000, 99},
		{"strictly above threshold is free", 2001, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items []models.CartItem
			if tt.subtotal > 0 {
				items = itemsWithSubtotal(tt.subtotal)
			}
			summary := calc.Summarize(items, nil)
			assert.Equal(t, tt.subtotal, summary.Subtotal)
			assert.Equal(t, tt.shipping, summary.Shipping)
		})
	}
}

func TestSummarizeDiscountRounding(t *testing.T) {
	calc := NewDefaultCalculator()

	// 1299 x 2 = 2598, 10% = 259.8, rounds half away from zero to 260
	items := []models.CartItem{
		{ProductID: 1, Name: "Diwali Diya Set", Price: 1299, Quantity: 2},
	}
	c := &models.Coupon{Code: "DIWALI10", Rate: 0.10}

	summary := calc.Summarize(items, c)

	assert.Equal(t, int64(2598), summary.Subtotal)
	assert.Equal(t, int64(260), summary.Discount)
	assert.Equal(t, int64(0), summary.Shipping)
	assert.Equal(t, int64(2338), summary.Total)
	assert.Equal(t, "DIWALI10", summary.CouponCode)
}

func TestSummarizeTotalClampedAtZero(t *testing.T) {
	// rates above 100% are not in the fixed table, but the total must
	// still never go negative
	calc := NewDefaultCalculator()
	items := itemsWithSubtotal(1000)
	c := &models.Coupon{Code: "EVERYTHING", Rate: 1.5}

	summary := calc.Summarize(items, c)

	assert.Equal(t, int64(0), summary.Total)
}

func TestSummarizeIsPure(t *testing.T) {
	calc := NewDefaultCalculator()
	items := []models.CartItem{
		{ProductID: 1, Price: 1299, Quantity: 2},
		{ProductID: 5, Price: 2499, Quantity: 1},
	}
	c := &models.Coupon{Code: "LIGHTS15", Rate: 0.15}

	first := calc.Summarize(items, c)
	second := calc.Summarize(items, c)

	assert.Equal(t, first, second)
}

func TestSummarizeCustomRules(t *testing.T) {
	calc := NewCalculator(500, 49)

	summary := calc.Summarize(itemsWithSubtotal(500), nil)
	assert.Equal(t, int64(49), summary.Shipping)

	summary = calc.Summarize(itemsWithSubtotal(501), nil)
	assert.Equal(t, int64(0), summary.Shipping)
}
