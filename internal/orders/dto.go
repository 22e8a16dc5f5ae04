package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/enums"
)

// OrderFilters describe the inputs supported by the order list.
type OrderFilters struct {
	// CustomerID scopes the list to one customer; uuid.Nil means unscoped (admin).
	CustomerID uuid.UUID
	// StatusKey is matched loosely: the normalized status must contain the
	// folded key as a substring, so "quotation" selects both quotation
	// and quotation_sent.
	StatusKey string
	// Query matches the order id or customer name case-insensitively.
	Query string
}

// OrderLineSummary is the line item shape returned in order reads.
type OrderLineSummary struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      *uuid.UUID `json:"product_id,omitempty"`
	ProductName    string     `json:"product_name"`
	Quantity       int        `json:"quantity"`
	UnitPriceCents int        `json:"unit_price_cents"`
	TotalCents     int        `json:"total_cents"`
}

// OrderSummary exposes the fields returned in the order list.
type OrderSummary struct {
	ID            uuid.UUID         `json:"id"`
	OrderNumber   int64             `json:"order_number"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	Status        enums.OrderStatus `json:"status"`
	TotalCents    int               `json:"total_cents"`
	RentalStart   *time.Time        `json:"rental_start,omitempty"`
	RentalEnd     *time.Time        `json:"rental_end,omitempty"`
	TotalItems    int               `json:"total_items"`
	CreatedAt     time.Time         `json:"created_at"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// OrderDetail is the full order read shape: header, customer and line items.
type OrderDetail struct {
	ID              uuid.UUID          `json:"id"`
	OrderNumber     int64              `json:"order_number"`
	CustomerID      uuid.UUID          `json:"customer_id"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	Status          enums.OrderStatus  `json:"status"`
	RentalStart     *time.Time         `json:"rental_start,omitempty"`
	RentalEnd       *time.Time         `json:"rental_end,omitempty"`
	TotalCents      int                `json:"total_cents"`
	Notes           *string            `json:"notes,omitempty"`
	QuotationSentAt *time.Time         `json:"quotation_sent_at,omitempty"`
	ConfirmedAt     *time.Time         `json:"confirmed_at,omitempty"`
	InvoicedAt      *time.Time         `json:"invoiced_at,omitempty"`
	CancelledAt     *time.Time         `json:"cancelled_at,omitempty"`
	Items           []OrderLineSummary `json:"items"`
	CreatedAt       time.Time          `json:"created_at"`
}

// LineInput is one replacement line item on a save.
type LineInput struct {
	ProductID      *uuid.UUID
	ProductName    string
	Quantity       int
	UnitPriceCents int
}

// CreateOrderInput carries everything needed to open a new draft order.
// Checkout is the usual caller; line prices are already snapshotted.
type CreateOrderInput struct {
	CustomerID    uuid.UUID
	CustomerName  string
	CustomerEmail string
	RentalStart   *time.Time
	RentalEnd     *time.Time
	Notes         *string
	Lines         []LineInput
	Actor         Actor
}

// SaveOrderInput carries the admin edit/save payload: header fields plus the
// full replacement set of line items.
type SaveOrderInput struct {
	OrderID       *uuid.UUID
	CustomerID    uuid.UUID
	CustomerName  string
	CustomerEmail string
	RentalStart   *time.Time
	RentalEnd     *time.Time
	Notes         *string
	TargetStatus  *enums.OrderStatus
	Lines         []LineInput
	Actor         Actor
}

// SaveOrderResult reports the saved id and recomputed total.
type SaveOrderResult struct {
	OrderID    uuid.UUID `json:"order_id"`
	TotalCents int       `json:"total_cents"`
}

// Actor identifies who triggered an operation. A zero Actor is allowed on the
// portal confirmation path where no session exists.
type Actor struct {
	UserID uuid.UUID
	Role   enums.Role
}

// TransitionInput targets one order for a lifecycle operation.
type TransitionInput struct {
	OrderID uuid.UUID
	Actor   Actor
}

// CancelOrderInput targets one order for cancellation.
type CancelOrderInput struct {
	OrderID uuid.UUID
	Reason  string
	Actor   Actor
}

// ListOrdersInput carries list filters plus pagination.
type ListOrdersInput struct {
	Filters OrderFilters
	Limit   int
	Cursor  string
}
