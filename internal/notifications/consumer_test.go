package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

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

type fakeSender struct {
	sent    []mailer.Message
	sendErr error
}

func (f *fakeSender) Send(ctx context.Context, msg mailer.Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeIdempotencyStore struct {
	keys map[string]string
}

func (f *fakeIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	return f.keys[key], nil
}

func (f *fakeIdempotencyStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if f.keys == nil {
		f.keys = map[string]string{}
	}
	if _, ok := f.keys[key]; ok {
		return false, nil
	}
	f.keys[key] = "1"
	return true, nil
}

func (f *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "rk:idempotency:" + scope + ":" + id
}

func (f *fakeIdempotencyStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.keys, key)
	}
	return nil
}

func newTestConsumer(t *testing.T, sender *fakeSender) *Consumer {
	t.Helper()
	manager, err := idempotency.NewManager(&fakeIdempotencyStore{}, time.Hour)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return &Consumer{
		sender:      sender,
		idempotency: manager,
		portal:      config.PortalConfig{SiteURL: "https://rentkart.example"},
		logg:        logger.New(logger.Options{ServiceName: "test"}),
	}
}

func eventMessage(t *testing.T, eventType enums.OutboxEventType, payload any) *pubsub.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	envelope, err := json.Marshal(outbox.PayloadEnvelope{
		Version:    1,
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return &pubsub.Message{
		Data:       envelope,
		Attributes: map[string]string{"event_type": string(eventType)},
	}
}

func TestProcessSendsQuotationEmail(t *testing.T) {
	sender := &fakeSender{}
	consumer := newTestConsumer(t, sender)

	orderID := uuid.New()
	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)
	msg := eventMessage(t, enums.EventQuotationSent, payloads.QuotationSentEvent{
		OrderID:       orderID,
		OrderNumber:   1042,
		CustomerName:  "Meera Nair",
		CustomerEmail: "meera@example.com",
		TotalCents:    150000,
		RentalStart:   &start,
		RentalEnd:     &end,
		Items: []payloads.EventLineItem{
			{ProductName: "DSLR Camera", Quantity: 2, UnitPriceCents: 15000, TotalCents: 150000},
		},
	})

	result := consumer.process(context.Background(), msg)
	if !result.ack || result.nack {
		t.Fatalf("expected ack, got %+v", result)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}

	mail := sender.sent[0]
	if mail.To != "meera@example.com" {
		t.Fatalf("unexpected recipient %q", mail.To)
	}
	if !strings.Contains(mail.Subject, "#1042") {
		t.Fatalf("subject missing order number: %q", mail.Subject)
	}
	if !strings.Contains(mail.HTMLBody, "https://rentkart.example/portal/orders/"+orderID.String()) {
		t.Fatal("quotation email missing portal confirm link")
	}
	if !strings.Contains(mail.HTMLBody, "Rs 1500.00") {
		t.Fatalf("quotation email missing total: %s", mail.HTMLBody)
	}
}

func TestProcessSendsConfirmationEmailWithLineItems(t *testing.T) {
	sender := &fakeSender{}
	consumer := newTestConsumer(t, sender)

	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)
	msg := eventMessage(t, enums.EventOrderConfirmed, payloads.OrderConfirmedEvent{
		OrderID:       uuid.New(),
		OrderNumber:   1042,
		CustomerName:  "Meera Nair",
		CustomerEmail: "meera@example.com",
		TotalCents:    160000,
		ConfirmedAt:   time.Now().UTC(),
		RentalStart:   &start,
		RentalEnd:     &end,
		Items: []payloads.EventLineItem{
			{ProductName: "DSLR Camera", Quantity: 2, UnitPriceCents: 15000, TotalCents: 150000},
			{ProductName: "Tripod", Quantity: 1, UnitPriceCents: 10000, TotalCents: 10000},
		},
	})

	result := consumer.process(context.Background(), msg)
	if !result.ack || result.nack {
		t.Fatalf("expected ack, got %+v", result)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}

	mail := sender.sent[0]
	if !strings.Contains(mail.HTMLBody, "DSLR Camera") || !strings.Contains(mail.HTMLBody, "Tripod") {
		t.Fatalf("confirmation email missing line items: %s", mail.HTMLBody)
	}
	if !strings.Contains(mail.HTMLBody, "Rs 1600.00") {
		t.Fatalf("confirmation email missing total: %s", mail.HTMLBody)
	}
}

func TestProcessIsIdempotentPerEvent(t *testing.T) {
	sender := &fakeSender{}
	consumer := newTestConsumer(t, sender)

	msg := eventMessage(t, enums.EventOrderConfirmed, payloads.OrderConfirmedEvent{
		OrderID:       uuid.New(),
		OrderNumber:   1042,
		CustomerName:  "Meera Nair",
		CustomerEmail: "meera@example.com",
		TotalCents:    150000,
		ConfirmedAt:   time.Now().UTC(),
	})

	first := consumer.process(context.Background(), msg)
	second := consumer.process(context.Background(), msg)
	if !first.ack || !second.ack {
		t.Fatalf("expected both deliveries acked, got %+v %+v", first, second)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected a single email after redelivery, got %d", len(sender.sent))
	}
}

func TestProcessSkipsUnmailedEvents(t *testing.T) {
	sender := &fakeSender{}
	consumer := newTestConsumer(t, sender)

	msg := eventMessage(t, enums.EventOrderCreated, payloads.OrderCreatedEvent{
		OrderID:     uuid.New(),
		OrderNumber: 1042,
	})

	result := consumer.process(context.Background(), msg)
	if !result.ack {
		t.Fatalf("expected ack for skipped event, got %+v", result)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no email, got %d", len(sender.sent))
	}
}

func TestProcessAcksOnSendFailure(t *testing.T) {
	sender := &fakeSender{sendErr: errors.New("smtp down")}
	consumer := newTestConsumer(t, sender)

	msg := eventMessage(t, enums.EventOrderCancelled, payloads.OrderCancelledEvent{
		OrderID:       uuid.New(),
		OrderNumber:   1042,
		CustomerName:  "Meera Nair",
		CustomerEmail: "meera@example.com",
		CancelledAt:   time.Now().UTC(),
		Reason:        "customer request",
	})

	result := consumer.process(context.Background(), msg)
	if !result.ack || result.nack {
		t.Fatalf("expected best-effort ack on send failure, got %+v", result)
	}
}

func TestProcessAcksMalformedEnvelope(t *testing.T) {
	sender := &fakeSender{}
	consumer := newTestConsumer(t, sender)

	msg := &pubsub.Message{
		Data:       []byte("not-json"),
		Attributes: map[string]string{"event_type": string(enums.EventQuotationSent)},
	}

	result := consumer.process(context.Background(), msg)
	if !result.ack || result.nack {
		t.Fatalf("expected poison message acked, got %+v", result)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no email, got %d", len(sender.sent))
	}
}
