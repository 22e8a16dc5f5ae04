package payloads

import (
	"time"

	"github.com/google/uuid"
)

// EventLineItem is the snapshot of a single order line carried inside event payloads.
type EventLineItem struct {
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int    `json:"unit_price_cents"`
	TotalCents     int    `json:"total_cents"`
}

// OrderCreatedEvent signals a new draft rental order.
type OrderCreatedEvent struct {
	OrderID       uuid.UUID `json:"order_id"`
	OrderNumber   int64     `json:"order_number"`
	CustomerID    uuid.UUID `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	TotalCents    int       `json:"total_cents"`
}

// QuotationSentEvent asks the notification worker to mail the quotation.
type QuotationSentEvent struct {
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   int64           `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	TotalCents    int             `json:"total_cents"`
	RentalStart   *time.Time      `json:"rental_start,omitempty"`
	RentalEnd     *time.Time      `json:"rental_end,omitempty"`
	Items         []EventLineItem `json:"items"`
}

// OrderConfirmedEvent is emitted the first time an order reaches confirmed.
type OrderConfirmedEvent struct {
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   int64           `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	TotalCents    int             `json:"total_cents"`
	ConfirmedAt   time.Time       `json:"confirmed_at"`
	RentalStart   *time.Time      `json:"rental_start,omitempty"`
	RentalEnd     *time.Time      `json:"rental_end,omitempty"`
	Items         []EventLineItem `json:"items"`
}

// OrderInvoicedEvent reports that an invoice now exists for the order.
type OrderInvoicedEvent struct {
	OrderID       uuid.UUID `json:"order_id"`
	InvoiceID     uuid.UUID `json:"invoice_id"`
	InvoiceNumber int64     `json:"invoice_number"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	TotalCents    int       `json:"total_cents"`
}

// OrderCancelledEvent is emitted whenever an order is cancelled.
type OrderCancelledEvent struct {
	OrderID       uuid.UUID `json:"order_id"`
	OrderNumber   int64     `json:"order_number"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CancelledAt   time.Time `json:"cancelled_at"`
	Reason        string    `json:"reason,omitempty"`
}

// InvoicePostedEvent is emitted when a draft invoice is posted.
type InvoicePostedEvent struct {
	InvoiceID     uuid.UUID `json:"invoice_id"`
	InvoiceNumber int64     `json:"invoice_number"`
	OrderID       uuid.UUID `json:"order_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	TotalCents    int       `json:"total_cents"`
	IssuedAt      time.Time `json:"issued_at"`
}
