package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/outbox"
	"github.com/rentkart/rentkart-backend/pkg/outbox/payloads"
	"github.com/rentkart/rentkart-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service defines the rental order lifecycle operations.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDetail, error)
	SaveOrder(ctx context.Context, input SaveOrderInput) (*SaveOrderResult, error)
	SendQuotation(ctx context.Context, input TransitionInput) error
	ConfirmOrder(ctx context.Context, input TransitionInput) error
	CancelOrder(ctx context.Context, input CancelOrderInput) error
	GetOrder(ctx context.Context, orderID uuid.UUID, actor Actor) (*OrderDetail, error)
	ListOrders(ctx context.Context, input ListOrdersInput) (*OrderList, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner, outboxSvc outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, outbox: outboxSvc}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDetail, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer email required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line item required")
	}
	items, total, err := buildLineItems(input.Lines)
	if err != nil {
		return nil, err
	}

	var created *models.RentalOrder
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		number, err := repo.NextOrderNumber(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate order number")
		}
		order := &models.RentalOrder{
			OrderNumber:   number,
			CustomerID:    input.CustomerID,
			CustomerName:  input.CustomerName,
			CustomerEmail: input.CustomerEmail,
			Status:        enums.OrderStatusDraft,
			RentalStart:   input.RentalStart,
			RentalEnd:     input.RentalEnd,
			TotalCents:    total,
			Notes:         input.Notes,
			Items:         items,
		}
		created, err = repo.CreateOrder(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   created.ID,
			Version:       1,
			Actor:         buildActor(input.Actor),
			Data: payloads.OrderCreatedEvent{
				OrderID:       created.ID,
				OrderNumber:   created.OrderNumber,
				CustomerID:    created.CustomerID,
				CustomerName:  created.CustomerName,
				CustomerEmail: created.CustomerEmail,
				TotalCents:    created.TotalCents,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}
	return newOrderDetail(created), nil
}

func (s *service) SaveOrder(ctx context.Context, input SaveOrderInput) (*SaveOrderResult, error) {
	if input.OrderID == nil {
		detail, err := s.CreateOrder(ctx, CreateOrderInput{
			CustomerID:    input.CustomerID,
			CustomerName:  input.CustomerName,
			CustomerEmail: input.CustomerEmail,
			RentalStart:   input.RentalStart,
			RentalEnd:     input.RentalEnd,
			Notes:         input.Notes,
			Lines:         input.Lines,
			Actor:         input.Actor,
		})
		if err != nil {
			return nil, err
		}
		return &SaveOrderResult{OrderID: detail.ID, TotalCents: detail.TotalCents}, nil
	}

	if *input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.TargetStatus != nil {
		target := *input.TargetStatus
		if target != enums.OrderStatusDraft && target != enums.OrderStatusQuotation {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				"save may only assign draft or quotation; use the lifecycle endpoints for other statuses")
		}
	}
	items, total, err := buildLineItems(input.Lines)
	if err != nil {
		return nil, err
	}

	result := &SaveOrderResult{TotalCents: total}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrder(ctx, *input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be edited")
		}
		result.OrderID = order.ID

		updates := map[string]any{
			"customer_name":  input.CustomerName,
			"customer_email": input.CustomerEmail,
			"rental_start":   input.RentalStart,
			"rental_end":     input.RentalEnd,
			"notes":          input.Notes,
			"total_cents":    total,
		}
		if input.TargetStatus != nil && *input.TargetStatus != order.Status {
			if err := ValidateTransition(order.Status, *input.TargetStatus); err != nil {
				return err
			}
			updates["status"] = *input.TargetStatus
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order header")
		}
		if err := repo.ReplaceLineItems(ctx, order.ID, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace line items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) SendQuotation(ctx context.Context, input TransitionInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrder(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		// Re-sending an already-sent quotation is allowed: the event goes out
		// again without a status change.
		if order.Status != enums.OrderStatusQuotationSent {
			if err := ValidateTransition(order.Status, enums.OrderStatusQuotationSent); err != nil {
				return err
			}
			now := time.Now()
			updates := map[string]any{
				"status":            enums.OrderStatusQuotationSent,
				"quotation_sent_at": now,
			}
			if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
			}
			order.Status = enums.OrderStatusQuotationSent
			order.QuotationSentAt = &now
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventQuotationSent,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.Actor),
			Data: payloads.QuotationSentEvent{
				OrderID:       order.ID,
				OrderNumber:   order.OrderNumber,
				CustomerName:  order.CustomerName,
				CustomerEmail: order.CustomerEmail,
				TotalCents:    order.TotalCents,
				RentalStart:   order.RentalStart,
				RentalEnd:     order.RentalEnd,
				Items:         eventLineItems(order.Items),
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
}

func (s *service) ConfirmOrder(ctx context.Context, input TransitionInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrder(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		// Already confirmed is a success no-op, without a second event.
		if order.Status == enums.OrderStatusConfirmed {
			return nil
		}
		if err := ValidateTransition(order.Status, enums.OrderStatusConfirmed); err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]any{
			"status":       enums.OrderStatusConfirmed,
			"confirmed_at": now,
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventOrderConfirmed,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.Actor),
			Data: payloads.OrderConfirmedEvent{
				OrderID:       order.ID,
				OrderNumber:   order.OrderNumber,
				CustomerName:  order.CustomerName,
				CustomerEmail: order.CustomerEmail,
				TotalCents:    order.TotalCents,
				ConfirmedAt:   now,
				RentalStart:   order.RentalStart,
				RentalEnd:     order.RentalEnd,
				Items:         eventLineItems(order.Items),
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
}

func (s *service) CancelOrder(ctx context.Context, input CancelOrderInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrder(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status == enums.OrderStatusCancelled {
			return nil
		}
		if err := ValidateTransition(order.Status, enums.OrderStatusCancelled); err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]any{
			"status":       enums.OrderStatusCancelled,
			"cancelled_at": now,
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventOrderCancelled,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.Actor),
			Data: payloads.OrderCancelledEvent{
				OrderID:       order.ID,
				OrderNumber:   order.OrderNumber,
				CustomerName:  order.CustomerName,
				CustomerEmail: order.CustomerEmail,
				CancelledAt:   now,
				Reason:        input.Reason,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
}

func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID, actor Actor) (*OrderDetail, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if actor.Role != enums.RoleAdmin && order.CustomerID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to customer")
	}
	return newOrderDetail(order), nil
}

func (s *service) ListOrders(ctx context.Context, input ListOrdersInput) (*OrderList, error) {
	params := pagination.Params{Limit: input.Limit, Cursor: input.Cursor}
	list, err := s.repo.ListOrders(ctx, params, input.Filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func buildLineItems(lines []LineInput) ([]models.OrderLineItem, int, error) {
	items := make([]models.OrderLineItem, 0, len(lines))
	total := 0
	for i, line := range lines {
		if strings.TrimSpace(line.ProductName) == "" {
			return nil, 0, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("line %d: product name required", i+1))
		}
		if line.Quantity <= 0 {
			return nil, 0, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("line %d: quantity must be positive", i+1))
		}
		if line.UnitPriceCents < 0 {
			return nil, 0, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("line %d: unit price cannot be negative", i+1))
		}
		lineTotal := line.Quantity * line.UnitPriceCents
		total += lineTotal
		items = append(items, models.OrderLineItem{
			ProductID:      line.ProductID,
			ProductName:    line.ProductName,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			TotalCents:     lineTotal,
		})
	}
	return items, total, nil
}

func eventLineItems(items []models.OrderLineItem) []payloads.EventLineItem {
	out := make([]payloads.EventLineItem, 0, len(items))
	for _, item := range items {
		out = append(out, payloads.EventLineItem{
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			TotalCents:     item.TotalCents,
		})
	}
	return out
}

func buildActor(actor Actor) *outbox.ActorRef {
	if actor.UserID == uuid.Nil {
		return nil
	}
	return &outbox.ActorRef{UserID: actor.UserID, Role: actor.Role.String()}
}

func newOrderDetail(order *models.RentalOrder) *OrderDetail {
	detail := &OrderDetail{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		Status:          order.Status,
		RentalStart:     order.RentalStart,
		RentalEnd:       order.RentalEnd,
		TotalCents:      order.TotalCents,
		Notes:           order.Notes,
		QuotationSentAt: order.QuotationSentAt,
		ConfirmedAt:     order.ConfirmedAt,
		InvoicedAt:      order.InvoicedAt,
		CancelledAt:     order.CancelledAt,
		Items:           make([]OrderLineSummary, 0, len(order.Items)),
		CreatedAt:       order.CreatedAt,
	}
	for _, item := range order.Items {
		detail.Items = append(detail.Items, OrderLineSummary{
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
