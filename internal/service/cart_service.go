package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cart-service/internal/cart"
	"cart-service/internal/cartstore"
	"cart-service/internal/catalog"
	"cart-service/internal/coupon"
	"cart-service/internal/models"
	"cart-service/internal/pricing"
	"cart-service/internal/util"

	"go.uber.org/zap"
)

// ErrInvalidQuantity is returned when an add request carries a quantity below 1
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// CartService mediates all cart mutations. Every mutation rehydrates the
// cart from the persistence store, applies the transition and writes the
// result back; an empty result removes the persisted key. The active
// coupon lives in memory only and does not survive a restart.
type CartService struct {
	store      cartstore.Store
	catalog    *catalog.Catalog
	calculator *pricing.Calculator
	coupons    *coupon.Engine
	logger     *zap.Logger

	mu     sync.Mutex
	active map[string]*models.Coupon
}

// NewCartService creates a new cart service
func NewCartService(
	store cartstore.Store,
	cat *catalog.Catalog,
	calculator *pricing.Calculator,
	coupons *coupon.Engine,
) *CartService {
	return &CartService{
		store:      store,
		catalog:    cat,
		calculator: calculator,
		coupons:    coupons,
		logger:     util.GetLogger(),
		active:     make(map[string]*models.Coupon),
	}
}

// CartView is the read model returned to callers: the lines, the badge
// count and the summary derived from the active coupon.
type CartView struct {
	Items     []models.CartItem   `json:"items"`
	ItemCount int                 `json:"item_count"`
	Summary   models.OrderSummary `json:"summary"`
	Coupon    *models.Coupon      `json:"coupon,omitempty"`
}

// GetCart returns the current cart contents and summary
func (s *CartService) GetCart(ctx context.Context, cartID string) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.hydrate(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.view(cartID, c), nil
}

// AddItem adds quantity of a product to the cart. Adding a product that is
// already in the cart increments its line quantity instead of duplicating.
func (s *CartService) AddItem(ctx context.Context, cartID string, productID int64, quantity int) (*CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.AddItem")
	defer span.End()

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.catalog.Product(productID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.hydrate(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.Add(product, quantity)
	if err := s.persist(ctx, cartID, c); err != nil {
		return nil, err
	}

	util.CartItemsAddedTotal.Add(float64(quantity))
	s.logger.Info("Item added to cart",
		zap.String("cart_id", cartID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity))

	return s.view(cartID, c), nil
}

// SetQuantity sets a line's quantity exactly. A quantity below 1 removes
// the line; an unknown product ID is a no-op.
func (s *CartService) SetQuantity(ctx context.Context, cartID string, productID int64, quantity int) (*CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.SetQuantity")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.hydrate(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.SetQuantity(productID, quantity)
	if err := s.persist(ctx, cartID, c); err != nil {
		return nil, err
	}

	return s.view(cartID, c), nil
}

// RemoveItem removes the line for a product; absent products are a no-op
func (s *CartService) RemoveItem(ctx context.Context, cartID string, productID int64) (*CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.RemoveItem")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.hydrate(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.Remove(productID)
	if err := s.persist(ctx, cartID, c); err != nil {
		return nil, err
	}

	util.CartItemsRemovedTotal.Inc()
	return s.view(cartID, c), nil
}

// ClearCart empties the cart, removes the persisted key and drops the
// active coupon
func (s *CartService) ClearCart(ctx context.Context, cartID string) error {
	ctx, span := util.StartSpan(ctx, "CartService.ClearCart")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clearLocked(ctx, cartID)
}

func (s *CartService) clearLocked(ctx context.Context, cartID string) error {
	if err := s.store.Remove(ctx, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	delete(s.active, cartID)

	util.CartsClearedTotal.Inc()
	s.logger.Info("Cart cleared", zap.String("cart_id", cartID))
	return nil
}

// ApplyCoupon validates a user-supplied code and, on success, replaces the
// cart's active coupon. Blank input returns coupon.ErrBlankCode and changes
// nothing; an invalid code returns coupon.ErrInvalidCoupon and leaves any
// previously applied coupon untouched.
func (s *CartService) ApplyCoupon(ctx context.Context, cartID, rawCode string) (*models.Coupon, error) {
	_, span := util.StartSpan(ctx, "CartService.ApplyCoupon")
	defer span.End()

	applied, err := s.coupons.Lookup(rawCode)
	if err != nil {
		if errors.Is(err, coupon.ErrInvalidCoupon) {
			util.CouponsRejectedTotal.Inc()
			s.logger.Info("Coupon rejected",
				zap.String("cart_id", cartID),
				zap.String("code", rawCode))
		}
		return nil, err
	}

	s.mu.Lock()
	s.active[cartID] = &applied
	s.mu.Unlock()

	util.CouponsAppliedTotal.WithLabelValues(applied.Code).Inc()
	s.logger.Info("Coupon applied",
		zap.String("cart_id", cartID),
		zap.String("code", applied.Code))

	return &applied, nil
}

// ActiveCoupon returns the cart's active coupon, or nil
func (s *CartService) ActiveCoupon(cartID string) *models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[cartID]
}

// hydrate loads a cart from the store. Missing keys start an empty cart.
// A payload that fails to restore is discarded along with its key and an
// empty cart is returned; corruption never propagates to the caller.
func (s *CartService) hydrate(ctx context.Context, cartID string) (*cart.Cart, error) {
	payload, ok, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !ok {
		return cart.New(), nil
	}

	c, err := cart.Restore(payload)
	if err != nil {
		util.CartsRecoveredTotal.Inc()
		s.logger.Warn("Discarding corrupt persisted cart",
			zap.String("cart_id", cartID),
			zap.Error(err))
		if err := s.store.Remove(ctx, cartID); err != nil {
			s.logger.Error("Failed to remove corrupt cart", zap.Error(err))
		}
		return cart.New(), nil
	}
	return c, nil
}

// persist writes the cart back, removing the key when the cart is empty so
// an emptied cart and a never-created cart look the same in the store
func (s *CartService) persist(ctx context.Context, cartID string, c *cart.Cart) error {
	if c.IsEmpty() {
		if err := s.store.Remove(ctx, cartID); err != nil {
			return fmt.Errorf("failed to remove empty cart: %w", err)
		}
		return nil
	}

	payload, err := c.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}
	if err := s.store.Save(ctx, cartID, payload); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *CartService) view(cartID string, c *cart.Cart) *CartView {
	items := c.Items()
	active := s.active[cartID]
	return &CartView{
		Items:     items,
		ItemCount: c.TotalItemCount(),
		Summary:   s.calculator.Summarize(items, active),
		Coupon:    active,
	}
}
