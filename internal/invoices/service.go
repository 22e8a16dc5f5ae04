package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/internal/orders"
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/outbox"
	"github.com/rentkart/rentkart-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service defines invoice operations.
type Service interface {
	CreateInvoiceFromOrder(ctx context.Context, input CreateInvoiceInput) (*InvoiceDetail, error)
	PostInvoice(ctx context.Context, input PostInvoiceInput) error
	GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*InvoiceDetail, error)
}

type service struct {
	repo       Repository
	ordersRepo orders.Repository
	tx         txRunner
	outbox     outboxPublisher
}

// NewService builds an invoices service with the required dependencies.
func NewService(repo Repository, ordersRepo orders.Repository, tx txRunner, outboxSvc outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoices repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, ordersRepo: ordersRepo, tx: tx, outbox: outboxSvc}, nil
}

// CreateInvoiceFromOrder copies a confirmed order's lines into a new draft
// invoice and moves the order to invoiced, all in one transaction.
func (s *service) CreateInvoiceFromOrder(ctx context.Context, input CreateInvoiceInput) (*InvoiceDetail, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var created *models.Invoice
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		order, err := ordersRepo.FindOrder(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status == enums.OrderStatusInvoiced {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is already invoiced")
		}
		if err := orders.ValidateTransition(order.Status, enums.OrderStatusInvoiced); err != nil {
			return err
		}

		number, err := repo.NextInvoiceNumber(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate invoice number")
		}

		now := time.Now()
		invoice := &models.Invoice{
			InvoiceNumber: number,
			OrderID:       order.ID,
			CustomerID:    order.CustomerID,
			CustomerName:  order.CustomerName,
			CustomerEmail: order.CustomerEmail,
			Status:        enums.InvoiceStatusDraft,
			TotalCents:    order.TotalCents,
			IssuedAt:      &now,
			DueDate:       input.DueDate,
			Items:         copyOrderLines(order.Items),
		}
		created, err = repo.CreateInvoice(ctx, invoice)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create invoice")
		}

		updates := map[string]any{
			"status":      enums.OrderStatusInvoiced,
			"invoiced_at": now,
		}
		if err := ordersRepo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventOrderInvoiced,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         actorRef(input.Actor),
			Data: payloads.OrderInvoicedEvent{
				OrderID:       order.ID,
				InvoiceID:     created.ID,
				InvoiceNumber: created.InvoiceNumber,
				CustomerName:  order.CustomerName,
				CustomerEmail: order.CustomerEmail,
				TotalCents:    order.TotalCents,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}
	return newInvoiceDetail(created), nil
}

func (s *service) PostInvoice(ctx context.Context, input PostInvoiceInput) error {
	if input.InvoiceID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invoice id required")
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		invoice, err := repo.FindInvoice(ctx, input.InvoiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
		}
		if invoice.Status == enums.InvoiceStatusPosted {
			return nil
		}

		if err := repo.UpdateInvoice(ctx, invoice.ID, map[string]any{
			"status": enums.InvoiceStatusPosted,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update invoice status")
		}

		issuedAt := time.Now()
		if invoice.IssuedAt != nil {
			issuedAt = *invoice.IssuedAt
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventInvoicePosted,
			AggregateType: enums.AggregateInvoice,
			AggregateID:   invoice.ID,
			Version:       1,
			Actor:         actorRef(input.Actor),
			Data: payloads.InvoicePostedEvent{
				InvoiceID:     invoice.ID,
				InvoiceNumber: invoice.InvoiceNumber,
				OrderID:       invoice.OrderID,
				CustomerName:  invoice.CustomerName,
				CustomerEmail: invoice.CustomerEmail,
				TotalCents:    invoice.TotalCents,
				IssuedAt:      issuedAt,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
}

func (s *service) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*InvoiceDetail, error) {
	if invoiceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice id required")
	}
	invoice, err := s.repo.FindInvoice(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	return newInvoiceDetail(invoice), nil
}

func copyOrderLines(items []models.OrderLineItem) []models.InvoiceItem {
	out := make([]models.InvoiceItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.InvoiceItem{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			TotalCents:     item.TotalCents,
		})
	}
	return out
}

func actorRef(actor orders.Actor) *outbox.ActorRef {
	if actor.UserID == uuid.Nil {
		return nil
	}
	return &outbox.ActorRef{UserID: actor.UserID, Role: actor.Role.String()}
}

func newInvoiceDetail(invoice *models.Invoice) *InvoiceDetail {
	detail := &InvoiceDetail{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		OrderID:       invoice.OrderID,
		CustomerID:    invoice.CustomerID,
		CustomerName:  invoice.CustomerName,
		CustomerEmail: invoice.CustomerEmail,
		Status:        invoice.Status,
		TotalCents:    invoice.TotalCents,
		IssuedAt:      invoice.IssuedAt,
		DueDate:       invoice.DueDate,
		Items:         make([]InvoiceItemSummary, 0, len(invoice.Items)),
		CreatedAt:     invoice.CreatedAt,
	}
	for _, item := range invoice.Items {
		detail.Items = append(detail.Items, InvoiceItemSummary{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			TotalCents:     item.TotalCents,
		})
	}
	return detail
}
