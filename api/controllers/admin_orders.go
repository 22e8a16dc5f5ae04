package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/api/responses"
	"github.com/rentkart/rentkart-backend/api/validators"
	invoicesvc "github.com/rentkart/rentkart-backend/internal/invoices"
	ordersvc "github.com/rentkart/rentkart-backend/internal/orders"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
	"github.com/rentkart/rentkart-backend/pkg/pagination"
)

// AdminOrdersList serves the dashboard list with search and the loose status
// filter ("quotation" matches quotation and quotation_sent).
func AdminOrdersList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListOrders(r.Context(), ordersvc.ListOrdersInput{
			Filters: ordersvc.OrderFilters{
				StatusKey: strings.TrimSpace(r.URL.Query().Get("status")),
				Query:     strings.TrimSpace(r.URL.Query().Get("q")),
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

func AdminOrderDetail(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), orderID, actorFromContext(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

type saveOrderLineRequest struct {
	ProductID      *uuid.UUID `json:"product_id,omitempty"`
	ProductName    string     `json:"product_name" validate:"required"`
	Quantity       int        `json:"quantity" validate:"required,min=1"`
	UnitPriceCents int        `json:"unit_price_cents" validate:"min=0"`
}

type saveOrderRequest struct {
	CustomerID    uuid.UUID              `json:"customer_id" validate:"required"`
	CustomerName  string                 `json:"customer_name" validate:"required"`
	CustomerEmail string                 `json:"customer_email" validate:"required,email"`
	RentalStart   *time.Time             `json:"rental_start,omitempty"`
	RentalEnd     *time.Time             `json:"rental_end,omitempty"`
	Notes         *string                `json:"notes,omitempty"`
	Status        *string                `json:"status,omitempty"`
	Lines         []saveOrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func (req saveOrderRequest) toInput(orderID *uuid.UUID, actor ordersvc.Actor) (ordersvc.SaveOrderInput, error) {
	input := ordersvc.SaveOrderInput{
		OrderID:       orderID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		RentalStart:   req.RentalStart,
		RentalEnd:     req.RentalEnd,
		Notes:         req.Notes,
		Actor:         actor,
	}

	if req.Status != nil {
		status, err := enums.NormalizeOrderStatus(*req.Status)
		if err != nil {
			return ordersvc.SaveOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.TargetStatus = &status
	}

	for _, line := range req.Lines {
		input.Lines = append(input.Lines, ordersvc.LineInput{
			ProductID:      line.ProductID,
			ProductName:    line.ProductName,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		})
	}
	return input, nil
}

// AdminCreateOrder opens a new order from the dashboard order form.
func AdminCreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload saveOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(nil, actorFromContext(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SaveOrder(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AdminSaveOrder replaces an existing order's header and line items.
func AdminSaveOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload saveOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(&orderID, actorFromContext(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SaveOrder(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func AdminSendQuotation(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SendQuotation(r.Context(), ordersvc.TransitionInput{
			OrderID: orderID,
			Actor:   actorFromContext(r),
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "quotation_sent"})
	}
}

func AdminConfirmOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ConfirmOrder(r.Context(), ordersvc.TransitionInput{
			OrderID: orderID,
			Actor:   actorFromContext(r),
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "confirmed"})
	}
}

type cancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

func AdminCancelOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cancelOrderRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		if err := svc.CancelOrder(r.Context(), ordersvc.CancelOrderInput{
			OrderID: orderID,
			Reason:  strings.TrimSpace(payload.Reason),
			Actor:   actorFromContext(r),
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}

type createInvoiceRequest struct {
	DueDate *time.Time `json:"due_date,omitempty"`
}

// AdminCreateInvoice turns a confirmed order into an invoice and moves the
// order to invoiced in the same transaction.
func AdminCreateInvoice(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createInvoiceRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		invoice, err := svc.CreateInvoiceFromOrder(r.Context(), invoicesvc.CreateInvoiceInput{
			OrderID: orderID,
			DueDate: payload.DueDate,
			Actor:   actorFromContext(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, invoice)
	}
}
