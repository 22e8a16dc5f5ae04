package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/internal/orders"
)

// CartItemSummary is the line shape returned in cart reads.
type CartItemSummary struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int       `json:"unit_price_cents"`
	LineTotalCents int       `json:"line_total_cents"`
}

// CartDetail is the customer's working cart. A customer with no open cart
// reads back an empty detail.
type CartDetail struct {
	ID          uuid.UUID         `json:"id"`
	RentalStart *time.Time        `json:"rental_start,omitempty"`
	RentalEnd   *time.Time        `json:"rental_end,omitempty"`
	TotalCents  int               `json:"total_cents"`
	Items       []CartItemSummary `json:"items"`
}

// AddItemInput puts a product into the customer's cart, creating the cart on
// first use. Rental dates ride along so the storefront can set them with any
// item add.
type AddItemInput struct {
	CustomerID  uuid.UUID
	ProductID   uuid.UUID
	Quantity    int
	RentalStart *time.Time
	RentalEnd   *time.Time
}

// CheckoutInput converts the active cart into a draft rental order.
type CheckoutInput struct {
	CustomerID uuid.UUID
	Actor      orders.Actor
}

// CheckoutResult reports the order the cart converted into.
type CheckoutResult struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber int64     `json:"order_number"`
	TotalCents  int       `json:"total_cents"`
}
