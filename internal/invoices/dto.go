package invoices

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/internal/orders"
	"github.com/rentkart/rentkart-backend/pkg/enums"
)

// CreateInvoiceInput turns a confirmed order into an invoice.
type CreateInvoiceInput struct {
	OrderID uuid.UUID
	DueDate *time.Time
	Actor   orders.Actor
}

// PostInvoiceInput marks a draft invoice as posted.
type PostInvoiceInput struct {
	InvoiceID uuid.UUID
	Actor     orders.Actor
}

// InvoiceItemSummary is the line shape returned in invoice reads.
type InvoiceItemSummary struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      *uuid.UUID `json:"product_id,omitempty"`
	ProductName    string     `json:"product_name"`
	Quantity       int        `json:"quantity"`
	UnitPriceCents int        `json:"unit_price_cents"`
	TotalCents     int        `json:"total_cents"`
}

// InvoiceDetail is the full invoice read shape.
type InvoiceDetail struct {
	ID            uuid.UUID            `json:"id"`
	InvoiceNumber int64                `json:"invoice_number"`
	OrderID       uuid.UUID            `json:"order_id"`
	CustomerID    uuid.UUID            `json:"customer_id"`
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email"`
	Status        enums.InvoiceStatus  `json:"status"`
	TotalCents    int                  `json:"total_cents"`
	IssuedAt      *time.Time           `json:"issued_at,omitempty"`
	DueDate       *time.Time           `json:"due_date,omitempty"`
	Items         []InvoiceItemSummary `json:"items"`
	CreatedAt     time.Time            `json:"created_at"`
}
