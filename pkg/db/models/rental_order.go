package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/enums"
)

// RentalOrder is the lifecycle aggregate moving from draft through quotation,
// confirmation and invoicing.
type RentalOrder struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     int64             `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerID      uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	CustomerName    string            `gorm:"column:customer_name;not null"`
	CustomerEmail   string            `gorm:"column:customer_email;not null"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	RentalStart     *time.Time        `gorm:"column:rental_start"`
	RentalEnd       *time.Time        `gorm:"column:rental_end"`
	TotalCents      int               `gorm:"column:total_cents;not null;default:0"`
	Notes           *string           `gorm:"column:notes"`
	QuotationSentAt *time.Time        `gorm:"column:quotation_sent_at"`
	ConfirmedAt     *time.Time        `gorm:"column:confirmed_at"`
	InvoicedAt      *time.Time        `gorm:"column:invoiced_at"`
	CancelledAt     *time.Time        `gorm:"column:cancelled_at"`
	Items           []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// RentalDays returns the inclusive day span of the booking, zero when dates are unset.
func (o RentalOrder) RentalDays() int {
	if o.RentalStart == nil || o.RentalEnd == nil {
		return 0
	}
	days := int(o.RentalEnd.Sub(*o.RentalStart).Hours()/24) + 1
	if days < 1 {
		return 0
	}
	return days
}
