package cart

import (
	"encoding/json"
	"errors"

	"cart-service/internal/models"
)

// ErrCorruptSnapshot is returned when a persisted payload cannot be
// restored into a well-formed line item sequence
var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")

// Cart holds an ordered sequence of line items. Insertion order is
// first-add order. At most one line exists per product ID and every
// quantity is at least 1. Cart carries no side effects; persistence
// lives in the store adapters.
type Cart struct {
	items []models.CartItem
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// Add merges quantity into an existing line for the product, or appends
// a new line snapshotting the product's name, price and image
func (c *Cart) Add(p models.Product, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity += quantity
			return
		}
	}
	c.items = append(c.items, models.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
		Image:     p.Image,
	})
}

// SetQuantity sets a line's quantity exactly. A quantity below 1 removes
// the line. Unknown product IDs are a no-op.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	if quantity < 1 {
		c.Remove(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line for the product if present
func (c *Cart) Remove(productID int64) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the line items in insertion order
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItemCount sums quantities across all lines (badge count)
func (c *Cart) TotalItemCount() int {
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// TotalValue sums price times quantity across all lines (the subtotal)
func (c *Cart) TotalValue() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// Snapshot serializes the line items for persistence
func (c *Cart) Snapshot() (string, error) {
	data, err := json.Marshal(c.items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Restore rebuilds a cart from a persisted snapshot. Payloads that do not
// parse as a well-formed line item sequence yield ErrCorruptSnapshot so the
// caller can discard the stored value and start empty.
func Restore(payload string) (*Cart, error) {
	var items []models.CartItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, ErrCorruptSnapshot
	}
	c := New()
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity < 1 {
			return nil, ErrCorruptSnapshot
		}
		c.Add(models.Product{
			ID:    item.ProductID,
			Name:  item.Name,
			Price: item.Price,
			Image: item.Image,
		}, item.Quantity)
	}
	return c, nil
}
