package worker

import (
	"context"

	"cart-service/internal/broker"
	"cart-service/internal/models"
	"cart-service/internal/util"

	"go.uber.org/zap"
)

// WarehouseWorker consumes OrderSubmitted events and acknowledges them as
// packed, standing in for the downstream warehouse in the "pay later"
// flow. Orders are not persisted anywhere.
type WarehouseWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewWarehouseWorker creates a new warehouse worker
func NewWarehouseWorker(consumer *broker.Consumer) *WarehouseWorker {
	w := &WarehouseWorker{
		consumer: consumer,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderSubmitted(w.handleOrderSubmitted)
	w.eventHandler = eventHandler

	return w
}

func (w *WarehouseWorker) handleOrderSubmitted(_ context.Context, event *models.OrderSubmittedEvent) error {
	w.logger.Info("Order received for packing",
		zap.String("order_ref", event.OrderRef),
		zap.String("cart_id", event.CartID),
		zap.Int("items", len(event.Items)),
		zap.Int64("total", event.Total),
		zap.String("coupon", event.CouponCode))
	return nil
}

// Start starts the worker
func (w *WarehouseWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting warehouse worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *WarehouseWorker) Stop() error {
	w.logger.Info("Stopping warehouse worker")
	return w.consumer.Close()
}
