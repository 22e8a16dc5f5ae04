package models

import (
	"time"

	"github.com/google/uuid"
)

// CartRecord is a customer-scoped working cart that checkout converts into a
// draft rental order.
type CartRecord struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID  uuid.UUID  `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:idx_cart_customer_active,where:converted_at IS NULL"`
	RentalStart *time.Time `gorm:"column:rental_start"`
	RentalEnd   *time.Time `gorm:"column:rental_end"`
	TotalCents  int        `gorm:"column:total_cents;not null;default:0"`
	ConvertedAt *time.Time `gorm:"column:converted_at"`
	Items       []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
