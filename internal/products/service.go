package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbpkg "github.com/rentkart/rentkart-backend/pkg/db"
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/pagination"
)

// Service defines product catalog operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDetail, error)
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*ProductDetail, error)
	DelistProduct(ctx context.Context, productID, vendorID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDetail, error)
	ListCatalog(ctx context.Context, input ListProductsInput) (*ProductList, error)
	ListVendorProducts(ctx context.Context, vendorID uuid.UUID, input ListProductsInput) (*ProductList, error)
}

type service struct {
	repo Repository
}

// NewService builds a products service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDetail, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if strings.TrimSpace(input.SKU) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category required")
	}
	if input.DailyRateCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "daily rate must be positive")
	}
	if input.SecurityDepositCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "security deposit cannot be negative")
	}
	if input.StockQty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantity cannot be negative")
	}

	product := &models.Product{
		VendorID:             input.VendorID,
		SKU:                  strings.TrimSpace(input.SKU),
		Name:                 strings.TrimSpace(input.Name),
		Description:          input.Description,
		Category:             strings.TrimSpace(input.Category),
		DailyRateCents:       input.DailyRateCents,
		SecurityDepositCents: input.SecurityDepositCents,
		StockQty:             input.StockQty,
		ImageURL:             input.ImageURL,
		IsActive:             true,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		if dbpkg.IsUniqueViolation(err, "ux_products_vendor_sku") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return newProductDetail(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, input UpdateProductInput) (*ProductDetail, error) {
	product, err := s.ownedProduct(ctx, input.ProductID, input.VendorID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		if strings.TrimSpace(*input.Category) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be empty")
		}
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.DailyRateCents != nil {
		if *input.DailyRateCents <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "daily rate must be positive")
		}
		updates["daily_rate_cents"] = *input.DailyRateCents
	}
	if input.SecurityDepositCents != nil {
		if *input.SecurityDepositCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "security deposit cannot be negative")
		}
		updates["security_deposit_cents"] = *input.SecurityDepositCents
	}
	if input.StockQty != nil {
		if *input.StockQty < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantity cannot be negative")
		}
		updates["stock_qty"] = *input.StockQty
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return newProductDetail(product), nil
	}

	if err := s.repo.UpdateProduct(ctx, product.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	updated, err := s.repo.FindProduct(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return newProductDetail(updated), nil
}

// DelistProduct hides a listing from the catalog. Historical order lines keep
// their snapshot, so rows are never hard-deleted.
func (s *service) DelistProduct(ctx context.Context, productID, vendorID uuid.UUID) error {
	product, err := s.ownedProduct(ctx, productID, vendorID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return nil
	}
	if err := s.repo.UpdateProduct(ctx, product.ID, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delist product")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDetail, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return newProductDetail(product), nil
}

func (s *service) ListCatalog(ctx context.Context, input ListProductsInput) (*ProductList, error) {
	filters := input.Filters
	filters.VendorID = uuid.Nil
	filters.ActiveOnly = true
	list, err := s.repo.ListProducts(ctx, pagination.Params{Limit: input.Limit, Cursor: input.Cursor}, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return list, nil
}

func (s *service) ListVendorProducts(ctx context.Context, vendorID uuid.UUID, input ListProductsInput) (*ProductList, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	filters := input.Filters
	filters.VendorID = vendorID
	filters.ActiveOnly = false
	list, err := s.repo.ListProducts(ctx, pagination.Params{Limit: input.Limit, Cursor: input.Cursor}, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendor products")
	}
	return list, nil
}

func (s *service) ownedProduct(ctx context.Context, productID, vendorID uuid.UUID) (*models.Product, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing")
	}
	product, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.VendorID != vendorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product does not belong to vendor")
	}
	return product, nil
}

func newProductDetail(product *models.Product) *ProductDetail {
	return &ProductDetail{
		ProductSummary: newProductSummary(product),
		Description:    product.Description,
	}
}
