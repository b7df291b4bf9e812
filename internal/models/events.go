package models

import "time"

// Event types
const (
	EventTypeOrderSubmitted = "ORDER_SUBMITTED"
	EventTypeOrderAccepted  = "ORDER_ACCEPTED"
	EventTypeOrderRejected  = "ORDER_REJECTED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderSubmittedEvent published when a cart is sent to the warehouse
type OrderSubmittedEvent struct {
	BaseEvent
	OrderRef   string     `json:"order_ref"`
	CartID     string     `json:"cart_id"`
	Items      []CartItem `json:"items"`
	Subtotal   int64      `json:"subtotal"`
	Discount   int64      `json:"discount"`
	Shipping   int64      `json:"shipping"`
	Total      int64      `json:"total"`
	CouponCode string     `json:"coupon_code,omitempty"`
}

// OrderAcceptedEvent published when the warehouse acknowledges an order
type OrderAcceptedEvent struct {
	BaseEvent
	OrderRef string `json:"order_ref"`
	CartID   string `json:"cart_id"`
}

// OrderRejectedEvent published when warehouse submission fails
type OrderRejectedEvent struct {
	BaseEvent
	OrderRef string `json:"order_ref"`
	CartID   string `json:"cart_id"`
	Reason   string `json:"reason"`
}
