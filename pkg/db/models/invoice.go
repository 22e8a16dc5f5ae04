package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/enums"
)

// Invoice is generated from a confirmed rental order and carries a frozen
// copy of its line items.
type Invoice struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InvoiceNumber int64               `gorm:"column:invoice_number;not null;uniqueIndex"`
	OrderID       uuid.UUID           `gorm:"column:order_id;type:uuid;not null;uniqueIndex"`
	CustomerID    uuid.UUID           `gorm:"column:customer_id;type:uuid;not null"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	CustomerEmail string              `gorm:"column:customer_email;not null"`
	Status        enums.InvoiceStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	TotalCents    int                 `gorm:"column:total_cents;not null;default:0"`
	IssuedAt      *time.Time          `gorm:"column:issued_at"`
	DueDate       *time.Time          `gorm:"column:due_date"`
	Items         []InvoiceItem       `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
