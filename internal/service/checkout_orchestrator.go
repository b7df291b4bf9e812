package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cart-service/internal/broker"
	"cart-service/internal/models"
	"cart-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrEmptyCart rejects checkout on a cart with no line items
	ErrEmptyCart = errors.New("cart is empty")

	// ErrCheckoutInFlight blocks a second submission while one is running
	ErrCheckoutInFlight = errors.New("checkout already in progress")

	// ErrSubmissionFailed wraps warehouse submission errors. The cart and
	// coupon are left untouched so the user can retry.
	ErrSubmissionFailed = errors.New("checkout submission failed")
)

// WarehouseSubmitter accepts a finalized order summary and returns an
// acknowledgment. The production implementation is out of scope; the
// default is a mocked warehouse client.
type WarehouseSubmitter interface {
	SubmitOrder(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutAck, error)
}

// CheckoutOrchestrator drives the submission flow: Idle -> Submitting ->
// Success or Failed. Success clears the cart and its coupon; failure keeps
// both and returns the cart to Idle. There is no automatic retry.
type CheckoutOrchestrator struct {
	carts          *CartService
	warehouse      WarehouseSubmitter
	eventPublisher *broker.EventPublisher
	timeout        time.Duration
	logger         *zap.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewCheckoutOrchestrator creates a new checkout orchestrator. The event
// publisher may be nil when no broker is configured.
func NewCheckoutOrchestrator(
	carts *CartService,
	warehouse WarehouseSubmitter,
	eventPublisher *broker.EventPublisher,
	timeout time.Duration,
) *CheckoutOrchestrator {
	return &CheckoutOrchestrator{
		carts:          carts,
		warehouse:      warehouse,
		eventPublisher: eventPublisher,
		timeout:        timeout,
		logger:         util.GetLogger(),
		inFlight:       make(map[string]bool),
	}
}

// State reports whether a cart is idle or mid-submission
func (co *CheckoutOrchestrator) State(cartID string) string {
	co.mu.Lock()
	defer co.mu.Unlock()
	if co.inFlight[cartID] {
		return models.CheckoutStateSubmitting
	}
	return models.CheckoutStateIdle
}

// Checkout submits the cart to the warehouse. The submission is bounded by
// the configured timeout; once issued it cannot be cancelled, only awaited.
func (co *CheckoutOrchestrator) Checkout(ctx context.Context, cartID string) (*models.CheckoutAck, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutOrchestrator.Checkout")
	defer span.End()

	view, err := co.carts.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, ErrEmptyCart
	}

	co.mu.Lock()
	if co.inFlight[cartID] {
		co.mu.Unlock()
		return nil, ErrCheckoutInFlight
	}
	co.inFlight[cartID] = true
	co.mu.Unlock()

	defer func() {
		co.mu.Lock()
		delete(co.inFlight, cartID)
		co.mu.Unlock()
	}()

	util.CheckoutAttemptsTotal.Inc()
	start := time.Now()
	defer func() {
		util.CheckoutLatency.Observe(time.Since(start).Seconds())
	}()

	orderRef := uuid.New().String()
	req := &models.CheckoutRequest{
		CartID:      cartID,
		Items:       view.Items,
		Subtotal:    view.Summary.Subtotal,
		Discount:    view.Summary.Discount,
		Shipping:    view.Summary.Shipping,
		Total:       view.Summary.Total,
		CouponCode:  view.Summary.CouponCode,
		SubmittedAt: time.Now(),
	}

	co.publishSubmitted(ctx, orderRef, req)

	submitCtx, cancel := context.WithTimeout(ctx, co.timeout)
	defer cancel()

	ack, err := co.warehouse.SubmitOrder(submitCtx, req)
	if err != nil {
		util.CheckoutFailedTotal.WithLabelValues("submission_error").Inc()
		co.logger.Warn("Checkout submission failed",
			zap.String("cart_id", cartID),
			zap.String("order_ref", orderRef),
			zap.Error(err))
		co.publishRejected(ctx, orderRef, cartID, err.Error())
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	ack.OrderRef = orderRef

	if err := co.carts.ClearCart(ctx, cartID); err != nil {
		co.logger.Error("Failed to clear cart after checkout",
			zap.String("cart_id", cartID),
			zap.Error(err))
	}

	util.CheckoutSuccessTotal.Inc()
	co.logger.Info("Checkout accepted",
		zap.String("cart_id", cartID),
		zap.String("order_ref", orderRef),
		zap.Int64("total", req.Total))

	co.publishAccepted(ctx, orderRef, cartID)
	return ack, nil
}

func (co *CheckoutOrchestrator) publishSubmitted(ctx context.Context, orderRef string, req *models.CheckoutRequest) {
	if co.eventPublisher == nil {
		return
	}
	event := &models.OrderSubmittedEvent{
		BaseEvent:  newBaseEvent(models.EventTypeOrderSubmitted),
		OrderRef:   orderRef,
		CartID:     req.CartID,
		Items:      req.Items,
		Subtotal:   req.Subtotal,
		Discount:   req.Discount,
		Shipping:   req.Shipping,
		Total:      req.Total,
		CouponCode: req.CouponCode,
	}
	if err := co.eventPublisher.PublishOrderSubmitted(ctx, event); err != nil {
		co.logger.Error("Failed to publish OrderSubmitted event", zap.Error(err))
	}
}

func (co *CheckoutOrchestrator) publishAccepted(ctx context.Context, orderRef, cartID string) {
	if co.eventPublisher == nil {
		return
	}
	event := &models.OrderAcceptedEvent{
		BaseEvent: newBaseEvent(models.EventTypeOrderAccepted),
		OrderRef:  orderRef,
		CartID:    cartID,
	}
	if err := co.eventPublisher.PublishOrderAccepted(ctx, event); err != nil {
		co.logger.Error("Failed to publish OrderAccepted event", zap.Error(err))
	}
}

func (co *CheckoutOrchestrator) publishRejected(ctx context.Context, orderRef, cartID, reason string) {
	if co.eventPublisher == nil {
		return
	}
	event := &models.OrderRejectedEvent{
		BaseEvent: newBaseEvent(models.EventTypeOrderRejected),
		OrderRef:  orderRef,
		CartID:    cartID,
		Reason:    reason,
	}
	if err := co.eventPublisher.PublishOrderRejected(ctx, event); err != nil {
		co.logger.Error("Failed to publish OrderRejected event", zap.Error(err))
	}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}
