package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"cart-service/internal/models"
	"cart-service/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventPublisher handles publishing checkout domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderSubmitted publishes an OrderSubmitted event
func (ep *EventPublisher) PublishOrderSubmitted(ctx context.Context, event *models.OrderSubmittedEvent) error {
	return ep.producer.PublishEvent(ctx, eventKey(event.OrderRef), event)
}

// PublishOrderAccepted publishes an OrderAccepted event
func (ep *EventPublisher) PublishOrderAccepted(ctx context.Context, event *models.OrderAcceptedEvent) error {
	return ep.producer.PublishEvent(ctx, eventKey(event.OrderRef), event)
}

// PublishOrderRejected publishes an OrderRejected event
func (ep *EventPublisher) PublishOrderRejected(ctx context.Context, event *models.OrderRejectedEvent) error {
	return ep.producer.PublishEvent(ctx, eventKey(event.OrderRef), event)
}

func eventKey(orderRef string) string {
	return fmt.Sprintf("order-%s", orderRef)
}

// EventHandler routes incoming checkout events to registered handlers
type EventHandler struct {
	logger           *zap.Logger
	onOrderSubmitted func(context.Context, *models.OrderSubmittedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{logger: util.GetLogger()}
}

// OnOrderSubmitted registers a handler for OrderSubmitted events
func (eh *EventHandler) OnOrderSubmitted(handler func(context.Context, *models.OrderSubmittedEvent) error) {
	eh.onOrderSubmitted = handler
}

// HandleMessage routes messages to the appropriate handler
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeOrderSubmitted:
		if eh.onOrderSubmitted != nil {
			var event models.OrderSubmittedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderSubmitted event: %w", err)
			}
			return eh.onOrderSubmitted(ctx, &event)
		}

	default:
		eh.logger.Debug("Unhandled event type",
			zap.String("event_type", baseEvent.EventType))
	}

	return nil
}
