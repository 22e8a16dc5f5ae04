package controllers

import (
	"net/http"
	"strings"

	"github.com/rentkart/rentkart-backend/api/responses"
	"github.com/rentkart/rentkart-backend/api/validators"
	productsvc "github.com/rentkart/rentkart-backend/internal/products"
	"github.com/rentkart/rentkart-backend/pkg/logger"
	"github.com/rentkart/rentkart-backend/pkg/pagination"
)

type createProductRequest struct {
	SKU                  string  `json:"sku" validate:"required"`
	Name                 string  `json:"name" validate:"required"`
	Description          *string `json:"description,omitempty"`
	Category             string  `json:"category" validate:"required"`
	DailyRateCents       int     `json:"daily_rate_cents" validate:"required,min=1"`
	SecurityDepositCents int     `json:"security_deposit_cents" validate:"omitempty,min=0"`
	StockQty             int     `json:"stock_qty" validate:"omitempty,min=0"`
	ImageURL             *string `json:"image_url,omitempty"`
}

// VendorCreateProduct handles listing creation for the calling vendor.
func VendorCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), productsvc.CreateProductInput{
			VendorID:             vendorID,
			SKU:                  payload.SKU,
			Name:                 payload.Name,
			Description:          payload.Description,
			Category:             payload.Category,
			DailyRateCents:       payload.DailyRateCents,
			SecurityDepositCents: payload.SecurityDepositCents,
			StockQty:             payload.StockQty,
			ImageURL:             payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	Name                 *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description          *string `json:"description,omitempty"`
	Category             *string `json:"category,omitempty" validate:"omitempty,min=1"`
	DailyRateCents       *int    `json:"daily_rate_cents,omitempty" validate:"omitempty,min=1"`
	SecurityDepositCents *int    `json:"security_deposit_cents,omitempty" validate:"omitempty,min=0"`
	StockQty             *int    `json:"stock_qty,omitempty" validate:"omitempty,min=0"`
	ImageURL             *string `json:"image_url,omitempty"`
	IsActive             *bool   `json:"is_active,omitempty"`
}

func VendorUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productsvc.UpdateProductInput{
			ProductID:            productID,
			VendorID:             vendorID,
			Name:                 payload.Name,
			Description:          payload.Description,
			Category:             payload.Category,
			DailyRateCents:       payload.DailyRateCents,
			SecurityDepositCents: payload.SecurityDepositCents,
			StockQty:             payload.StockQty,
			ImageURL:             payload.ImageURL,
			IsActive:             payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// VendorDelistProduct hides a listing from the catalog without deleting it.
func VendorDelistProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DelistProduct(r.Context(), productID, vendorID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "delisted"})
	}
}

// VendorListProducts lists the caller's own products, delisted ones included.
func VendorListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListVendorProducts(r.Context(), vendorID, productsvc.ListProductsInput{
			Filters: productsvc.ProductFilters{
				Category: strings.TrimSpace(r.URL.Query().Get("category")),
				Query:    strings.TrimSpace(r.URL.Query().Get("q")),
			},
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}
