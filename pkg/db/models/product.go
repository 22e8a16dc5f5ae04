package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a vendor's rentable listing.
type Product struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID             uuid.UUID `gorm:"column:vendor_id;type:uuid;not null"`
	SKU                  string    `gorm:"column:sku;not null"`
	Name                 string    `gorm:"column:name;not null"`
	Description          *string   `gorm:"column:description"`
	Category             string    `gorm:"column:category;not null"`
	DailyRateCents       int       `gorm:"column:daily_rate_cents;not null"`
	SecurityDepositCents int       `gorm:"column:security_deposit_cents;not null;default:0"`
	StockQty             int       `gorm:"column:stock_qty;not null;default:0"`
	ImageURL             *string   `gorm:"column:image_url"`
	IsActive             bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
