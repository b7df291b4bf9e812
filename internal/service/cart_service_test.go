package service

import (
	"context"
	"testing"

	"cart-service/internal/cartstore"
	"cart-service/internal/catalog"
	"cart-service/internal/coupon"
	"cart-service/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService() (*CartService, *cartstore.MemoryStore) {
	store := cartstore.NewMemoryStore()
	svc := NewCartService(
		store,
		catalog.Default(),
		pricing.NewDefaultCalculator(),
		coupon.NewDefaultEngine(),
	)
	return svc, store
}

func TestAddItemPersistsCart(t *testing.T) {
	svc, store := newTestCartService()
	ctx := context.Background()

	view, err := svc.AddItem(ctx, "cart-1", 1, 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.ItemCount)

	_, ok, err := store.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.True(t, ok, "mutation must persist the cart")
}

func TestAddItemMergesQuantity(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "cart-1", 1, 2)
	require.NoError(t, err)
	view, err := svc.AddItem(ctx, "cart-1", 1, 3)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := newTestCartService()

	_, err := svc.AddItem(context.Background(), "cart-1", 99999, 1)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestCartService()

	_, err := svc.AddItem(context.Background(), "cart-1", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestEmptyingCartRemovesPersistedKey(t *testing.T) {
	svc, store := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "cart-1", 1, 2)
	require.NoError(t, err)

	// reducing the only line below 1 empties the cart
	view, err := svc.SetQuantity(ctx, "cart-1", 1, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, ok, err := store.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.False(t, ok, "empty cart must remove the persisted key")
}

func TestHydrateAcrossInstances(t *testing.T) {
	store := cartstore.NewMemoryStore()
	cat := catalog.Default()
	calc := pricing.NewDefaultCalculator()
	engine := coupon.NewDefaultEngine()
	ctx := context.Background()

	first := NewCartService(store, cat, calc, engine)
	_, err := first.AddItem(ctx, "cart-1", 1, 2)
	require.NoError(t, err)

	// a fresh instance over the same store sees the cart
	second := NewCartService(store, cat, calc, engine)
	view, err := second.GetCart(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)

	// the coupon is ephemeral and does not survive
	assert.Nil(t, view.Coupon)
}

func TestCorruptPersistedCartIsDiscarded(t *testing.T) {
	svc, store := newTestCartService()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "cart-1", "{{{not json"))

	view, err := svc.GetCart(ctx, "cart-1")
	require.NoError(t, err, "corruption must never surface as an error")
	assert.Empty(t, view.Items)
	assert.Equal(t, int64(0), view.Summary.Total)

	_, ok, err := store.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.False(t, ok, "corrupt payload must be removed")
}

func TestApplyCoupon(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	applied, err := svc.ApplyCoupon(ctx, "cart-1", " diwali10 ")
	require.NoError(t, err)
	assert.Equal(t, "DIWALI10", applied.Code)
	assert.Equal(t, 0.10, applied.Rate)

	active := svc.ActiveCoupon("cart-1")
	require.NotNil(t, active)
	assert.Equal(t, "DIWALI10", active.Code)
}

func TestApplyCouponReplacesActive(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.ApplyCoupon(ctx, "cart-1", "DIWALI10")
	require.NoError(t, err)
	_, err = svc.ApplyCoupon(ctx, "cart-1", "FESTIVE20")
	require.NoError(t, err)

	active := svc.ActiveCoupon("cart-1")
	require.NotNil(t, active)
	assert.Equal(t, "FESTIVE20", active.Code)
}

func TestInvalidCouponLeavesActiveUntouched(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.ApplyCoupon(ctx, "cart-1", "DIWALI10")
	require.NoError(t, err)

	_, err = svc.ApplyCoupon(ctx, "cart-1", "BOGUS99")
	assert.ErrorIs(t, err, coupon.ErrInvalidCoupon)

	active := svc.ActiveCoupon("cart-1")
	require.NotNil(t, active)
	assert.Equal(t, "DIWALI10", active.Code)
}

func TestBlankCouponIsSilentNoOp(t *testing.T) {
	svc, _ := newTestCartService()

	_, err := svc.ApplyCoupon(context.Background(), "cart-1", "   ")
	assert.ErrorIs(t, err, coupon.ErrBlankCode)
	assert.Nil(t, svc.ActiveCoupon("cart-1"))
}

func TestCouponAffectsSummary(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	// Diwali Diya Set is 1299; two of them make 2598
	_, err := svc.AddItem(ctx, "cart-1", 1, 2)
	require.NoError(t, err)
	_, err = svc.ApplyCoupon(ctx, "cart-1", "DIWALI10")
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2598), view.Summary.Subtotal)
	assert.Equal(t, int64(260), view.Summary.Discount)
	assert.Equal(t, int64(0), view.Summary.Shipping)
	assert.Equal(t, int64(2338), view.Summary.Total)
	assert.Equal(t, "DIWALI10", view.Summary.CouponCode)
}

func TestClearCartDropsItemsAndCoupon(t *testing.T) {
	svc, store := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "cart-1", 1, 2)
	require.NoError(t, err)
	_, err = svc.ApplyCoupon(ctx, "cart-1", "FESTIVE20")
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, "cart-1"))

	view, err := svc.GetCart(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Nil(t, svc.ActiveCoupon("cart-1"))

	_, ok, err := store.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartsAreIsolatedByID(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "cart-1", 1, 1)
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, "cart-2")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}
