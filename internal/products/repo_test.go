package products

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/pagination"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  sku TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL,
  daily_rate_cents INTEGER NOT NULL,
  security_deposit_cents INTEGER NOT NULL DEFAULT 0,
  stock_qty INTEGER NOT NULL DEFAULT 0,
  image_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec(`DELETE FROM products`).Error)

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, product *models.Product) *models.Product {
	t.Helper()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositoryListProductsFilters(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	camera := seedProduct(t, db, &models.Product{
		VendorID: vendorID, SKU: "CAM-001", Name: "DSLR Camera",
		Category: "photography", DailyRateCents: 10000, IsActive: true,
		CreatedAt: base,
	})
	seedProduct(t, db, &models.Product{
		VendorID: vendorID, SKU: "TNT-001", Name: "Camping Tent",
		Category: "outdoor", DailyRateCents: 5000, IsActive: true,
		CreatedAt: base.Add(time.Minute),
	})
	delisted := seedProduct(t, db, &models.Product{
		VendorID: vendorID, SKU: "OLD-001", Name: "Old Camera",
		Category: "photography", DailyRateCents: 2000, IsActive: false,
		CreatedAt: base.Add(2 * time.Minute),
	})

	list, err := repo.ListProducts(ctx, pagination.Params{}, ProductFilters{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, list.Products, 2)

	list, err = repo.ListProducts(ctx, pagination.Params{}, ProductFilters{ActiveOnly: true, Category: "photography"})
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, camera.ID, list.Products[0].ID)

	list, err = repo.ListProducts(ctx, pagination.Params{}, ProductFilters{ActiveOnly: true, Query: "CAMERA"})
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, camera.ID, list.Products[0].ID)

	// Vendor dashboards see delisted rows too.
	list, err = repo.ListProducts(ctx, pagination.Params{}, ProductFilters{VendorID: vendorID})
	require.NoError(t, err)
	assert.Len(t, list.Products, 3)
	assert.Equal(t, delisted.ID, list.Products[0].ID)
}

func TestRepositoryUpdateProductNotFound(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	err := repo.UpdateProduct(context.Background(), uuid.New(), map[string]any{"is_active": false})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
