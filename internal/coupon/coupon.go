package coupon

import (
	"errors"
	"strings"

	"cart-service/internal/models"
)

var (
	// ErrBlankCode signals empty or whitespace-only input. The caller
	// treats it as a silent no-op rather than a user-facing error.
	ErrBlankCode = errors.New("blank coupon code")

	// ErrInvalidCoupon is returned when a code is not in the table
	ErrInvalidCoupon = errors.New("invalid coupon code")
)

// InvalidCouponMessage is the user-facing text for rejected codes
const InvalidCouponMessage = "Invalid coupon code. Please try again."

// Engine validates user-supplied codes against a fixed promotional table.
// Codes are case-insensitive and canonicalized to upper case.
type Engine struct {
	table map[string]models.Coupon
}

// NewEngine creates an engine over the given coupon table, keyed by
// canonical (upper-case) code
func NewEngine(coupons []models.Coupon) *Engine {
	table := make(map[string]models.Coupon, len(coupons))
	for _, c := range coupons {
		c.Code = strings.ToUpper(c.Code)
		table[c.Code] = c
	}
	return &Engine{table: table}
}

// NewDefaultEngine creates an engine with the fixed festival promotions
func NewDefaultEngine() *Engine {
	return NewEngine([]models.Coupon{
		{Code: "DIWALI10", Rate: 0.10, Message: "10% off your order"},
		{Code: "FESTIVE20", Rate: 0.20, Message: "20% off your order"},
		{Code: "LIGHTS15", Rate: 0.15, Message: "15% off your order"},
	})
}

// Lookup trims and canonicalizes rawCode and resolves it against the
// table. Blank input yields ErrBlankCode, a table miss ErrInvalidCoupon.
// Lookup never mutates any currently active coupon; replacement is the
// caller's move on success.
func (e *Engine) Lookup(rawCode string) (models.Coupon, error) {
	code := strings.TrimSpace(rawCode)
	if code == "" {
		return models.Coupon{}, ErrBlankCode
	}

	c, ok := e.table[strings.ToUpper(code)]
	if !ok {
		return models.Coupon{}, ErrInvalidCoupon
	}
	return c, nil
}
