package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"cart-service/internal/models"
	"cart-service/internal/util"

	"go.uber.org/zap"
)

// ErrWarehouseUnavailable is the mocked submission failure
var ErrWarehouseUnavailable = errors.New("warehouse did not accept the order")

// WarehouseClient is the mocked warehouse submission endpoint. It sleeps
// for a short jittered interval and succeeds at a configurable rate,
// standing in for the real "send to warehouse, pay later" system.
type WarehouseClient struct {
	logger      *zap.Logger
	successRate float64 // 0.0 - 1.0
}

// NewWarehouseClient creates a mocked warehouse client
func NewWarehouseClient(successRate float64) *WarehouseClient {
	return &WarehouseClient{
		logger:      util.GetLogger(),
		successRate: successRate,
	}
}

// SubmitOrder submits the order summary to the warehouse (mocked). It
// honours context cancellation during the simulated processing delay.
func (wc *WarehouseClient) SubmitOrder(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutAck, error) {
	ctx, span := util.StartSpan(ctx, "WarehouseClient.SubmitOrder")
	defer span.End()

	wc.logger.Info("Submitting order to warehouse",
		zap.String("cart_id", req.CartID),
		zap.Int("items", len(req.Items)),
		zap.Int64("total", req.Total))

	delay := time.Duration(100+rand.Intn(400)) * time.Millisecond
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if rand.Float64() >= wc.successRate {
		return nil, ErrWarehouseUnavailable
	}

	return &models.CheckoutAck{AcceptedAt: time.Now()}, nil
}
