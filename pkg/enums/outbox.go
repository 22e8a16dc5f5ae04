package enums

import "fmt"

// OutboxAggregateType identifies which aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregateOrder   OutboxAggregateType = "rental_order"
	AggregateInvoice OutboxAggregateType = "invoice"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateOrder,
	AggregateInvoice,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid aggregate type %q", value)
}

// OutboxEventType enumerates the domain events published through the outbox.
type OutboxEventType string

const (
	EventOrderCreated   OutboxEventType = "order_created"
	EventQuotationSent  OutboxEventType = "quotation_sent"
	EventOrderConfirmed OutboxEventType = "order_confirmed"
	EventOrderInvoiced  OutboxEventType = "order_invoiced"
	EventOrderCancelled OutboxEventType = "order_cancelled"
	EventInvoicePosted  OutboxEventType = "invoice_posted"
)

var validOutboxEventTypes = []OutboxEventType{
	EventOrderCreated,
	EventQuotationSent,
	EventOrderConfirmed,
	EventOrderInvoiced,
	EventOrderCancelled,
	EventInvoicePosted,
}

// IsValid reports whether the value is a known OutboxEventType.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid outbox event type %q", value)
}

// OutboxDLQErrorReason classifies why an outbox row landed in the DLQ.
type OutboxDLQErrorReason string

const (
	DLQReasonNonRetryable     OutboxDLQErrorReason = "non_retryable"
	DLQReasonAttemptsExceeded OutboxDLQErrorReason = "attempts_exceeded"
)
