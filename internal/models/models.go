package models

import "time"

// Product represents a product in the catalog
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Category    string   `json:"category"`
	Rating      float64  `json:"rating"`
	Image       string   `json:"image"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	InStock     bool     `json:"inStock"`
	Description string   `json:"description,omitempty"`
}

// CartItem represents one line in a cart. Name, price and image are
// snapshots taken when the product was first added.
type CartItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
}

// Coupon is a named percentage discount from the fixed promotional table
type Coupon struct {
	Code    string  `json:"code"`
	Rate    float64 `json:"rate"`
	Message string  `json:"message"`
}

// OrderSummary is derived from cart items plus the active coupon.
// It is recomputed on every read and never stored.
type OrderSummary struct {
	Subtotal   int64  `json:"subtotal"`
	Discount   int64  `json:"discount"`
	Shipping   int64  `json:"shipping"`
	Total      int64  `json:"total"`
	CouponCode string `json:"coupon_code,omitempty"`
}

// CheckoutRequest is the payload handed to the warehouse submission endpoint
type CheckoutRequest struct {
	CartID      string     `json:"cart_id"`
	Items       []CartItem `json:"items"`
	Subtotal    int64      `json:"subtotal"`
	Discount    int64      `json:"discount"`
	Shipping    int64      `json:"shipping"`
	Total       int64      `json:"total"`
	CouponCode  string     `json:"coupon_code,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
}

// CheckoutAck is the acknowledgment returned by the warehouse
type CheckoutAck struct {
	OrderRef   string    `json:"order_ref"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// Checkout states
const (
	CheckoutStateIdle       = "IDLE"
	CheckoutStateSubmitting = "SUBMITTING"
	CheckoutStateSuccess    = "SUCCESS"
	CheckoutStateFailed     = "FAILED"
)
