package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/pagination"
)

type stubProductsRepo struct {
	product *models.Product
	updates map[string]any

	createProduct func(ctx context.Context, product *models.Product) (*models.Product, error)
	listProducts  func(ctx context.Context, params pagination.Params, filters ProductFilters) (*ProductList, error)
}

func (s *stubProductsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubProductsRepo) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if s.createProduct != nil {
		return s.createProduct(ctx, product)
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	s.product = product
	return product, nil
}

func (s *stubProductsRepo) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}

func (s *stubProductsRepo) ListProducts(ctx context.Context, params pagination.Params, filters ProductFilters) (*ProductList, error) {
	if s.listProducts != nil {
		return s.listProducts(ctx, params, filters)
	}
	return &ProductList{}, nil
}

func (s *stubProductsRepo) UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.product == nil || s.product.ID != id {
		return gorm.ErrRecordNotFound
	}
	s.updates = updates
	for key, value := range updates {
		switch key {
		case "is_active":
			if v, ok := value.(bool); ok {
				s.product.IsActive = v
			}
		case "name":
			if v, ok := value.(string); ok {
				s.product.Name = v
			}
		case "daily_rate_cents":
			if v, ok := value.(int); ok {
				s.product.DailyRateCents = v
			}
		case "stock_qty":
			if v, ok := value.(int); ok {
				s.product.StockQty = v
			}
		}
	}
	return nil
}

func activeProduct(vendorID uuid.UUID) *models.Product {
	return &models.Product{
		ID:             uuid.New(),
		VendorID:       vendorID,
		SKU:            "CAM-001",
		Name:           "DSLR Camera",
		Category:       "photography",
		DailyRateCents: 10000,
		StockQty:       3,
		IsActive:       true,
	}
}

func TestCreateProductValidates(t *testing.T) {
	repo := &stubProductsRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"missing vendor", CreateProductInput{SKU: "A", Name: "B", Category: "c", DailyRateCents: 1}},
		{"missing sku", CreateProductInput{VendorID: uuid.New(), Name: "B", Category: "c", DailyRateCents: 1}},
		{"zero rate", CreateProductInput{VendorID: uuid.New(), SKU: "A", Name: "B", Category: "c"}},
		{"negative stock", CreateProductInput{VendorID: uuid.New(), SKU: "A", Name: "B", Category: "c", DailyRateCents: 1, StockQty: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tc.input)
			if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	detail, err := svc.CreateProduct(ctx, CreateProductInput{
		VendorID:       uuid.New(),
		SKU:            " CAM-001 ",
		Name:           "DSLR Camera",
		Category:       "photography",
		DailyRateCents: 10000,
		StockQty:       3,
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if detail.SKU != "CAM-001" {
		t.Fatalf("expected trimmed sku, got %q", detail.SKU)
	}
	if !detail.IsActive {
		t.Fatal("new products should be active")
	}
}

func TestUpdateProductScopedToVendor(t *testing.T) {
	vendorID := uuid.New()
	repo := &stubProductsRepo{product: activeProduct(vendorID)}
	svc, _ := NewService(repo)
	ctx := context.Background()

	rate := 12000
	detail, err := svc.UpdateProduct(ctx, UpdateProductInput{
		ProductID:      repo.product.ID,
		VendorID:       vendorID,
		DailyRateCents: &rate,
	})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if detail.DailyRateCents != 12000 {
		t.Fatalf("expected rate 12000, got %d", detail.DailyRateCents)
	}

	_, err = svc.UpdateProduct(ctx, UpdateProductInput{
		ProductID:      repo.product.ID,
		VendorID:       uuid.New(),
		DailyRateCents: &rate,
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for other vendor, got %v", err)
	}
}

func TestDelistProductHidesFromCatalog(t *testing.T) {
	vendorID := uuid.New()
	repo := &stubProductsRepo{product: activeProduct(vendorID)}
	svc, _ := NewService(repo)
	ctx := context.Background()

	if err := svc.DelistProduct(ctx, repo.product.ID, vendorID); err != nil {
		t.Fatalf("DelistProduct failed: %v", err)
	}
	if repo.product.IsActive {
		t.Fatal("expected product to be inactive")
	}

	// Delisting twice is a no-op.
	repo.updates = nil
	if err := svc.DelistProduct(ctx, repo.product.ID, vendorID); err != nil {
		t.Fatalf("second delist failed: %v", err)
	}
	if repo.updates != nil {
		t.Fatal("expected no write on second delist")
	}

	_, err := svc.GetProduct(ctx, repo.product.ID)
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected delisted product to read as not found, got %v", err)
	}
}

func TestListCatalogForcesActiveScope(t *testing.T) {
	repo := &stubProductsRepo{
		listProducts: func(ctx context.Context, params pagination.Params, filters ProductFilters) (*ProductList, error) {
			if !filters.ActiveOnly {
				t.Fatal("catalog list must be active-only")
			}
			if filters.VendorID != uuid.Nil {
				t.Fatal("catalog list must not be vendor-scoped")
			}
			return &ProductList{}, nil
		},
	}
	svc, _ := NewService(repo)

	vendorScoped := ProductFilters{VendorID: uuid.New(), ActiveOnly: false}
	if _, err := svc.ListCatalog(context.Background(), ListProductsInput{Filters: vendorScoped}); err != nil {
		t.Fatalf("ListCatalog failed: %v", err)
	}
}

func TestListVendorProductsRequiresVendor(t *testing.T) {
	svc, _ := NewService(&stubProductsRepo{})

	_, err := svc.ListVendorProducts(context.Background(), uuid.Nil, ListProductsInput{})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
