package products

import (
	"time"

	"github.com/google/uuid"
)

// ProductFilters describe the inputs supported by product lists.
type ProductFilters struct {
	// VendorID scopes the list to one vendor; uuid.Nil means the public catalog.
	VendorID uuid.UUID
	// ActiveOnly hides delisted products; the public catalog always sets it.
	ActiveOnly bool
	Category   string
	// Query matches the product name case-insensitively.
	Query string
}

// ProductSummary exposes the fields returned in product lists.
type ProductSummary struct {
	ID                   uuid.UUID `json:"id"`
	VendorID             uuid.UUID `json:"vendor_id"`
	SKU                  string    `json:"sku"`
	Name                 string    `json:"name"`
	Category             string    `json:"category"`
	DailyRateCents       int       `json:"daily_rate_cents"`
	SecurityDepositCents int       `json:"security_deposit_cents"`
	StockQty             int       `json:"stock_qty"`
	ImageURL             *string   `json:"image_url,omitempty"`
	IsActive             bool      `json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
}

// ProductList wraps the paginated products plus the next page cursor.
type ProductList struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// ProductDetail is the full product read shape.
type ProductDetail struct {
	ProductSummary
	Description *string `json:"description,omitempty"`
}

// CreateProductInput carries a new vendor listing.
type CreateProductInput struct {
	VendorID             uuid.UUID
	SKU                  string
	Name                 string
	Description          *string
	Category             string
	DailyRateCents       int
	SecurityDepositCents int
	StockQty             int
	ImageURL             *string
}

// UpdateProductInput patches an existing listing; nil fields are untouched.
type UpdateProductInput struct {
	ProductID            uuid.UUID
	VendorID             uuid.UUID
	Name                 *string
	Description          *string
	Category             *string
	DailyRateCents       *int
	SecurityDepositCents *int
	StockQty             *int
	ImageURL             *string
	IsActive             *bool
}

// ListProductsInput carries list filters plus pagination.
type ListProductsInput struct {
	Filters ProductFilters
	Limit   int
	Cursor  string
}
