package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
)

// Repository defines persistence operations for working carts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindActiveCart(ctx context.Context, customerID uuid.UUID) (*models.CartRecord, error)
	CreateCart(ctx context.Context, cart *models.CartRecord) (*models.CartRecord, error)
	UpdateCart(ctx context.Context, id uuid.UUID, updates map[string]any) error
	CreateCartItem(ctx context.Context, item *models.CartItem) error
	UpdateCartItem(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteCartItem(ctx context.Context, cartID, itemID uuid.UUID) error
}
