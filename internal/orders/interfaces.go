package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/pagination"
)

// Repository defines persistence operations for rental orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	NextOrderNumber(ctx context.Context) (int64, error)
	CreateOrder(ctx context.Context, order *models.RentalOrder) (*models.RentalOrder, error)
	FindOrder(ctx context.Context, id uuid.UUID) (*models.RentalOrder, error)
	ListOrders(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ReplaceLineItems(ctx context.Context, orderID uuid.UUID, items []models.OrderLineItem) error
}
