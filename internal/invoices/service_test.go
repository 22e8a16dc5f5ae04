package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/internal/orders"
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/outbox"
	"github.com/rentkart/rentkart-backend/pkg/outbox/payloads"
	"github.com/rentkart/rentkart-backend/pkg/pagination"
)

type stubInvoicesRepo struct {
	invoice        *models.Invoice
	invoiceUpdates map[string]any
	created        *models.Invoice
}

func (s *stubInvoicesRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubInvoicesRepo) NextInvoiceNumber(ctx context.Context) (int64, error) {
	return 5001, nil
}

func (s *stubInvoicesRepo) CreateInvoice(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	for i := range invoice.Items {
		if invoice.Items[i].ID == uuid.Nil {
			invoice.Items[i].ID = uuid.New()
		}
	}
	s.created = invoice
	return invoice, nil
}

func (s *stubInvoicesRepo) FindInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	if s.invoice == nil || s.invoice.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.invoice, nil
}

func (s *stubInvoicesRepo) FindInvoiceByOrder(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error) {
	if s.invoice == nil || s.invoice.OrderID != orderID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.invoice, nil
}

func (s *stubInvoicesRepo) UpdateInvoice(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.invoice == nil || s.invoice.ID != id {
		return gorm.ErrRecordNotFound
	}
	s.invoiceUpdates = updates
	if v, ok := updates["status"].(enums.InvoiceStatus); ok {
		s.invoice.Status = v
	}
	return nil
}

type stubOrdersRepo struct {
	order        *models.RentalOrder
	orderUpdates map[string]any
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) orders.Repository {
	return s
}

func (s *stubOrdersRepo) NextOrderNumber(ctx context.Context) (int64, error) {
	return 1001, nil
}

func (s *stubOrdersRepo) CreateOrder(ctx context.Context, order *models.RentalOrder) (*models.RentalOrder, error) {
	return order, nil
}

func (s *stubOrdersRepo) FindOrder(ctx context.Context, id uuid.UUID) (*models.RentalOrder, error) {
	if s.order == nil || s.order.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubOrdersRepo) ListOrders(ctx context.Context, params pagination.Params, filters orders.OrderFilters) (*orders.OrderList, error) {
	return &orders.OrderList{}, nil
}

func (s *stubOrdersRepo) UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.order == nil || s.order.ID != id {
		return gorm.ErrRecordNotFound
	}
	s.orderUpdates = updates
	if v, ok := updates["status"].(enums.OrderStatus); ok {
		s.order.Status = v
	}
	return nil
}

func (s *stubOrdersRepo) ReplaceLineItems(ctx context.Context, orderID uuid.UUID, items []models.OrderLineItem) error {
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOutboxPublisher struct {
	events []outbox.DomainEvent
}

func (s *stubOutboxPublisher) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

func confirmedOrder() *models.RentalOrder {
	confirmedAt := time.Now().Add(-time.Hour)
	return &models.RentalOrder{
		ID:            uuid.New(),
		OrderNumber:   1042,
		CustomerID:    uuid.New(),
		CustomerName:  "Asha Verma",
		CustomerEmail: "asha@example.com",
		Status:        enums.OrderStatusConfirmed,
		TotalCents:    22500,
		ConfirmedAt:   &confirmedAt,
		Items: []models.OrderLineItem{
			{ID: uuid.New(), ProductName: "Camera", Quantity: 2, UnitPriceCents: 10000, TotalCents: 20000},
			{ID: uuid.New(), ProductName: "Tripod", Quantity: 1, UnitPriceCents: 2500, TotalCents: 2500},
		},
	}
}

func TestCreateInvoiceFromConfirmedOrder(t *testing.T) {
	repo := &stubInvoicesRepo{}
	ordersRepo := &stubOrdersRepo{order: confirmedOrder()}
	publisher := &stubOutboxPublisher{}
	svc, err := NewService(repo, ordersRepo, stubTxRunner{}, publisher)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	detail, err := svc.CreateInvoiceFromOrder(context.Background(), CreateInvoiceInput{OrderID: ordersRepo.order.ID})
	if err != nil {
		t.Fatalf("CreateInvoiceFromOrder failed: %v", err)
	}
	if detail.InvoiceNumber != 5001 {
		t.Fatalf("expected invoice number 5001, got %d", detail.InvoiceNumber)
	}
	if detail.Status != enums.InvoiceStatusDraft {
		t.Fatalf("expected draft invoice, got %s", detail.Status)
	}
	if detail.TotalCents != 22500 {
		t.Fatalf("expected total 22500, got %d", detail.TotalCents)
	}
	if len(detail.Items) != 2 {
		t.Fatalf("expected 2 copied items, got %d", len(detail.Items))
	}
	if ordersRepo.order.Status != enums.OrderStatusInvoiced {
		t.Fatalf("expected order to be invoiced, got %s", ordersRepo.order.Status)
	}
	if len(publisher.events) != 1 || publisher.events[0].EventType != enums.EventOrderInvoiced {
		t.Fatalf("expected order_invoiced event, got %+v", publisher.events)
	}
	payload, ok := publisher.events[0].Data.(payloads.OrderInvoicedEvent)
	if !ok {
		t.Fatalf("unexpected payload type %T", publisher.events[0].Data)
	}
	if payload.InvoiceID != detail.ID {
		t.Fatal("event should reference the created invoice")
	}
}

func TestCreateInvoiceRequiresConfirmedOrder(t *testing.T) {
	for _, status := range []enums.OrderStatus{
		enums.OrderStatusDraft,
		enums.OrderStatusQuotation,
		enums.OrderStatusQuotationSent,
		enums.OrderStatusCancelled,
	} {
		order := confirmedOrder()
		order.Status = status
		ordersRepo := &stubOrdersRepo{order: order}
		svc, _ := NewService(&stubInvoicesRepo{}, ordersRepo, stubTxRunner{}, &stubOutboxPublisher{})

		_, err := svc.CreateInvoiceFromOrder(context.Background(), CreateInvoiceInput{OrderID: order.ID})
		if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("expected state conflict for %s, got %v", status, err)
		}
	}
}

func TestCreateInvoiceRejectsAlreadyInvoiced(t *testing.T) {
	order := confirmedOrder()
	order.Status = enums.OrderStatusInvoiced
	ordersRepo := &stubOrdersRepo{order: order}
	svc, _ := NewService(&stubInvoicesRepo{}, ordersRepo, stubTxRunner{}, &stubOutboxPublisher{})

	_, err := svc.CreateInvoiceFromOrder(context.Background(), CreateInvoiceInput{OrderID: order.ID})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestCreateInvoiceOrderNotFound(t *testing.T) {
	svc, _ := NewService(&stubInvoicesRepo{}, &stubOrdersRepo{}, stubTxRunner{}, &stubOutboxPublisher{})

	_, err := svc.CreateInvoiceFromOrder(context.Background(), CreateInvoiceInput{OrderID: uuid.New()})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostInvoiceEmitsOnce(t *testing.T) {
	issuedAt := time.Now().Add(-time.Hour)
	invoice := &models.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: 5001,
		OrderID:       uuid.New(),
		CustomerID:    uuid.New(),
		CustomerName:  "Asha Verma",
		CustomerEmail: "asha@example.com",
		Status:        enums.InvoiceStatusDraft,
		TotalCents:    22500,
		IssuedAt:      &issuedAt,
	}
	repo := &stubInvoicesRepo{invoice: invoice}
	publisher := &stubOutboxPublisher{}
	svc, _ := NewService(repo, &stubOrdersRepo{}, stubTxRunner{}, publisher)
	ctx := context.Background()
	input := PostInvoiceInput{InvoiceID: invoice.ID}

	if err := svc.PostInvoice(ctx, input); err != nil {
		t.Fatalf("PostInvoice failed: %v", err)
	}
	if invoice.Status != enums.InvoiceStatusPosted {
		t.Fatalf("expected posted, got %s", invoice.Status)
	}
	if err := svc.PostInvoice(ctx, input); err != nil {
		t.Fatalf("second post should be a no-op, got %v", err)
	}
	if len(publisher.events) != 1 || publisher.events[0].EventType != enums.EventInvoicePosted {
		t.Fatalf("expected single invoice_posted event, got %+v", publisher.events)
	}
}

func TestGetInvoiceNotFound(t *testing.T) {
	svc, _ := NewService(&stubInvoicesRepo{}, &stubOrdersRepo{}, stubTxRunner{}, &stubOutboxPublisher{})

	_, err := svc.GetInvoice(context.Background(), uuid.New())
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
