package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/config"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	"github.com/rentkart/rentkart-backend/pkg/logger"
	"github.com/rentkart/rentkart-backend/pkg/mailer"
	"github.com/rentkart/rentkart-backend/pkg/outbox"
	"github.com/rentkart/rentkart-backend/pkg/outbox/idempotency"
	"github.com/rentkart/rentkart-backend/pkg/outbox/payloads"
)

const orderNotificationConsumer = "order-notifications"

// Consumer watches domain events and mails customers about quotation,
// confirmation, cancellation and invoice milestones. Delivery is best-effort:
// a failed send is logged and the event is acked rather than redelivered.
type Consumer struct {
	sender       mailer.Sender
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	portal       config.PortalConfig
	logg         *logger.Logger
}

// NewConsumer builds an order notification consumer.
func NewConsumer(sender mailer.Sender, subscription *pubsub.Subscriber, manager *idempotency.Manager, portal config.PortalConfig, logg *logger.Logger) (*Consumer, error) {
	if sender == nil {
		return nil, fmt.Errorf("mail sender required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("domain subscription required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		sender:       sender,
		subscription: subscription,
		idempotency:  manager,
		portal:       portal,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := enums.OutboxEventType(msg.Attributes["event_type"])
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	if !mailedEventTypes[eventType] {
		return processResult{ack: true}
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return processResult{ack: true}
	}

	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		c.logg.Error(logCtx, "invalid event id", err)
		return processResult{ack: true}
	}

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, orderNotificationConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	message, err := c.buildMessage(eventType, envelope.Data)
	if err != nil {
		c.logg.Error(logCtx, "failed to build email", err)
		return processResult{ack: true}
	}

	if err := c.sender.Send(ctx, message); err != nil {
		// Delivery is best-effort; the lifecycle transition already happened.
		c.logg.Error(c.logg.WithField(logCtx, "to", message.To), "email delivery failed", err)
		return processResult{ack: true}
	}

	c.logg.Info(c.logg.WithField(logCtx, "to", message.To), "notification email sent")
	return processResult{ack: true}
}

var mailedEventTypes = map[enums.OutboxEventType]bool{
	enums.EventQuotationSent:  true,
	enums.EventOrderConfirmed: true,
	enums.EventOrderCancelled: true,
	enums.EventInvoicePosted:  true,
}

func (c *Consumer) buildMessage(eventType enums.OutboxEventType, data json.RawMessage) (mailer.Message, error) {
	switch eventType {
	case enums.EventQuotationSent:
		var payload payloads.QuotationSentEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return mailer.Message{}, fmt.Errorf("parse quotation payload: %w", err)
		}
		return buildQuotationEmail(c.portal, payload)
	case enums.EventOrderConfirmed:
		var payload payloads.OrderConfirmedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return mailer.Message{}, fmt.Errorf("parse confirmation payload: %w", err)
		}
		return buildConfirmationEmail(payload)
	case enums.EventOrderCancelled:
		var payload payloads.OrderCancelledEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return mailer.Message{}, fmt.Errorf("parse cancellation payload: %w", err)
		}
		return buildCancellationEmail(payload)
	case enums.EventInvoicePosted:
		var payload payloads.InvoicePostedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return mailer.Message{}, fmt.Errorf("parse invoice payload: %w", err)
		}
		return buildInvoiceEmail(payload)
	default:
		return mailer.Message{}, fmt.Errorf("no email for event type %s", eventType)
	}
}
