package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	invoicesvc "github.com/rentkart/rentkart-backend/internal/invoices"
	ordersvc "github.com/rentkart/rentkart-backend/internal/orders"
	"github.com/rentkart/rentkart-backend/pkg/enums"
)

type stubOrdersService struct {
	listFn    func(ctx context.Context, input ordersvc.ListOrdersInput) (*ordersvc.OrderList, error)
	saveFn    func(ctx context.Context, input ordersvc.SaveOrderInput) (*ordersvc.SaveOrderResult, error)
	confirmFn func(ctx context.Context, input ordersvc.TransitionInput) error
	cancelFn  func(ctx context.Context, input ordersvc.CancelOrderInput) error
}

func (s stubOrdersService) CreateOrder(ctx context.Context, input ordersvc.CreateOrderInput) (*ordersvc.OrderDetail, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s stubOrdersService) SaveOrder(ctx context.Context, input ordersvc.SaveOrderInput) (*ordersvc.SaveOrderResult, error) {
	if s.saveFn != nil {
		return s.saveFn(ctx, input)
	}
	return &ordersvc.SaveOrderResult{}, nil
}

func (s stubOrdersService) SendQuotation(ctx context.Context, input ordersvc.TransitionInput) error {
	return nil
}

func (s stubOrdersService) ConfirmOrder(ctx context.Context, input ordersvc.TransitionInput) error {
	if s.confirmFn != nil {
		return s.confirmFn(ctx, input)
	}
	return nil
}

func (s stubOrdersService) CancelOrder(ctx context.Context, input ordersvc.CancelOrderInput) error {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, input)
	}
	return nil
}

func (s stubOrdersService) GetOrder(ctx context.Context, orderID uuid.UUID, actor ordersvc.Actor) (*ordersvc.OrderDetail, error) {
	return &ordersvc.OrderDetail{ID: orderID}, nil
}

func (s stubOrdersService) ListOrders(ctx context.Context, input ordersvc.ListOrdersInput) (*ordersvc.OrderList, error) {
	if s.listFn != nil {
		return s.listFn(ctx, input)
	}
	return &ordersvc.OrderList{}, nil
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func TestAdminOrdersListPassesFilters(t *testing.T) {
	orderID := uuid.New()
	svc := stubOrdersService{
		listFn: func(ctx context.Context, input ordersvc.ListOrdersInput) (*ordersvc.OrderList, error) {
			if input.Filters.StatusKey != "quotation" {
				t.Fatalf("unexpected status key %q", input.Filters.StatusKey)
			}
			if input.Filters.Query != "asha" {
				t.Fatalf("unexpected query %q", input.Filters.Query)
			}
			if input.Filters.CustomerID != uuid.Nil {
				t.Fatalf("admin list must be unscoped, got %s", input.Filters.CustomerID)
			}
			if input.Limit != 5 {
				t.Fatalf("unexpected limit %d", input.Limit)
			}
			return &ordersvc.OrderList{
				Orders: []ordersvc.OrderSummary{{ID: orderID, OrderNumber: 1042, Status: enums.OrderStatusQuotationSent}},
			}, nil
		},
	}

	handler := AdminOrdersList(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/?status=quotation&q=asha&limit=5", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data ordersvc.OrderList `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Orders) != 1 || envelope.Data.Orders[0].ID != orderID {
		t.Fatalf("unexpected payload %v", envelope.Data)
	}
}

func TestAdminSaveOrderMapsBody(t *testing.T) {
	orderID := uuid.New()
	customerID := uuid.New()
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	var got ordersvc.SaveOrderInput
	svc := stubOrdersService{
		saveFn: func(ctx context.Context, input ordersvc.SaveOrderInput) (*ordersvc.SaveOrderResult, error) {
			got = input
			return &ordersvc.SaveOrderResult{OrderID: orderID, TotalCents: 30000}, nil
		},
	}

	body, _ := json.Marshal(map[string]any{
		"customer_id":    customerID,
		"customer_name":  "Asha Verma",
		"customer_email": "asha@example.com",
		"rental_start":   start,
		"status":         "quotation",
		"lines": []map[string]any{
			{"product_name": "DSLR Camera", "quantity": 3, "unit_price_cents": 10000},
		},
	})

	handler := AdminSaveOrder(svc, nil)
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/", bytes.NewReader(body)), "orderId", orderID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
	if got.OrderID == nil || *got.OrderID != orderID {
		t.Fatalf("expected order id %s, got %v", orderID, got.OrderID)
	}
	if got.CustomerID != customerID || got.CustomerEmail != "asha@example.com" {
		t.Fatalf("unexpected customer mapping %+v", got)
	}
	if got.TargetStatus == nil || *got.TargetStatus != enums.OrderStatusQuotation {
		t.Fatalf("unexpected target status %v", got.TargetStatus)
	}
	if len(got.Lines) != 1 || got.Lines[0].Quantity != 3 || got.Lines[0].UnitPriceCents != 10000 {
		t.Fatalf("unexpected lines %+v", got.Lines)
	}
}

func TestAdminSaveOrderNormalizesStatusSpelling(t *testing.T) {
	orderID := uuid.New()

	var got ordersvc.SaveOrderInput
	svc := stubOrdersService{
		saveFn: func(ctx context.Context, input ordersvc.SaveOrderInput) (*ordersvc.SaveOrderResult, error) {
			got = input
			return &ordersvc.SaveOrderResult{OrderID: orderID}, nil
		},
	}

	body, _ := json.Marshal(map[string]any{
		"customer_id":    uuid.New(),
		"customer_name":  "Asha Verma",
		"customer_email": "asha@example.com",
		"status":         "Quotation",
		"lines": []map[string]any{
			{"product_name": "DSLR Camera", "quantity": 1, "unit_price_cents": 10000},
		},
	})

	handler := AdminSaveOrder(svc, nil)
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/", bytes.NewReader(body)), "orderId", orderID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
	if got.TargetStatus == nil || *got.TargetStatus != enums.OrderStatusQuotation {
		t.Fatalf("expected quotation target, got %v", got.TargetStatus)
	}
}

func TestAdminSaveOrderAcceptsZeroPriceLine(t *testing.T) {
	orderID := uuid.New()

	var got ordersvc.SaveOrderInput
	svc := stubOrdersService{
		saveFn: func(ctx context.Context, input ordersvc.SaveOrderInput) (*ordersvc.SaveOrderResult, error) {
			got = input
			return &ordersvc.SaveOrderResult{OrderID: orderID}, nil
		},
	}

	body, _ := json.Marshal(map[string]any{
		"customer_id":    uuid.New(),
		"customer_name":  "Asha Verma",
		"customer_email": "asha@example.com",
		"lines": []map[string]any{
			{"product_name": "DSLR Camera", "quantity": 1, "unit_price_cents": 10000},
			{"product_name": "Lens cloth", "quantity": 1, "unit_price_cents": 0},
		},
	})

	handler := AdminSaveOrder(svc, nil)
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/", bytes.NewReader(body)), "orderId", orderID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
	if len(got.Lines) != 2 || got.Lines[1].UnitPriceCents != 0 {
		t.Fatalf("unexpected lines %+v", got.Lines)
	}
}

func TestAdminSaveOrderRejectsUnknownStatus(t *testing.T) {
	svc := stubOrdersService{
		saveFn: func(ctx context.Context, input ordersvc.SaveOrderInput) (*ordersvc.SaveOrderResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	body, _ := json.Marshal(map[string]any{
		"customer_id":    uuid.New(),
		"customer_name":  "Asha Verma",
		"customer_email": "asha@example.com",
		"status":         "shipped",
		"lines": []map[string]any{
			{"product_name": "DSLR Camera", "quantity": 1, "unit_price_cents": 10000},
		},
	})

	handler := AdminCreateOrder(svc, nil)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body %s", resp.Code, resp.Body.String())
	}
}

func TestAdminCancelOrderPassesReason(t *testing.T) {
	orderID := uuid.New()
	svc := stubOrdersService{
		cancelFn: func(ctx context.Context, input ordersvc.CancelOrderInput) error {
			if input.OrderID != orderID {
				t.Fatalf("unexpected order id %s", input.OrderID)
			}
			if input.Reason != "equipment unavailable" {
				t.Fatalf("unexpected reason %q", input.Reason)
			}
			return nil
		},
	}

	body := []byte(`{"reason":"equipment unavailable"}`)
	handler := AdminCancelOrder(svc, nil)
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)), "orderId", orderID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
}

func TestPortalConfirmOrderAllowsAnonymousActor(t *testing.T) {
	orderID := uuid.New()
	svc := stubOrdersService{
		confirmFn: func(ctx context.Context, input ordersvc.TransitionInput) error {
			if input.OrderID != orderID {
				t.Fatalf("unexpected order id %s", input.OrderID)
			}
			if input.Actor != (ordersvc.Actor{}) {
				t.Fatalf("expected zero actor, got %+v", input.Actor)
			}
			return nil
		},
	}

	handler := PortalConfirmOrder(svc, nil)
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/", nil), "orderId", orderID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
}

type stubInvoicesService struct {
	createFn func(ctx context.Context, input invoicesvc.CreateInvoiceInput) (*invoicesvc.InvoiceDetail, error)
	postFn   func(ctx context.Context, input invoicesvc.PostInvoiceInput) error
}

func (s stubInvoicesService) CreateInvoiceFromOrder(ctx context.Context, input invoicesvc.CreateInvoiceInput) (*invoicesvc.InvoiceDetail, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return &invoicesvc.InvoiceDetail{}, nil
}

func (s stubInvoicesService) PostInvoice(ctx context.Context, input invoicesvc.PostInvoiceInput) error {
	if s.postFn != nil {
		return s.postFn(ctx, input)
	}
	return nil
}

func (s stubInvoicesService) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*invoicesvc.InvoiceDetail, error) {
	return &invoicesvc.InvoiceDetail{ID: invoiceID}, nil
}

func TestAdminCreateInvoiceReturnsCreated(t *testing.T) {
	orderID := uuid.New()
	invoiceID := uuid.New()
	svc := stubInvoicesService{
		createFn: func(ctx context.Context, input invoicesvc.CreateInvoiceInput) (*invoicesvc.InvoiceDetail, error) {
			if input.OrderID != orderID {
				t.Fatalf("unexpected order id %s", input.OrderID)
			}
			return &invoicesvc.InvoiceDetail{ID: invoiceID, InvoiceNumber: 7}, nil
		},
	}

	handler := AdminCreateInvoice(svc, nil)
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/", nil), "orderId", orderID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data invoicesvc.InvoiceDetail `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != invoiceID {
		t.Fatalf("unexpected invoice %v", envelope.Data)
	}
}

func TestAdminPostInvoice(t *testing.T) {
	invoiceID := uuid.New()
	svc := stubInvoicesService{
		postFn: func(ctx context.Context, input invoicesvc.PostInvoiceInput) error {
			if input.InvoiceID != invoiceID {
				t.Fatalf("unexpected invoice id %s", input.InvoiceID)
			}
			return nil
		},
	}

	handler := AdminPostInvoice(svc, nil)
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/", nil), "invoiceId", invoiceID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
}
