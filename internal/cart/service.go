package cart

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

type productsRepository interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type usersRepository interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service defines the customer cart operations.
type Service interface {
	GetCart(ctx context.Context, customerID uuid.UUID) (*CartDetail, error)
	AddItem(ctx context.Context, input AddItemInput) (*CartDetail, error)
	RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) (*CartDetail, error)
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
}

type service struct {
	repo       Repository
	products   productsRepository
	users      usersRepository
	ordersRepo orders.Repository
	tx         txRunner
	outbox     outboxPublisher
}

// ServiceParams bundles the dependencies required to build a cart service.
type ServiceParams struct {
	Repo         Repository
	ProductsRepo productsRepository
	UsersRepo    usersRepository
	OrdersRepo   orders.Repository
	Tx           txRunner
	Outbox       outboxPublisher
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.ProductsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if params.UsersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.OrdersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		repo:       params.Repo,
		products:   params.ProductsRepo,
		users:      params.UsersRepo,
		ordersRepo: params.OrdersRepo,
		tx:         params.Tx,
		outbox:     params.Outbox,
	}, nil
}

func (s *service) GetCart(ctx context.Context, customerID uuid.UUID) (*CartDetail, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	cart, err := s.repo.FindActiveCart(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CartDetail{Items: []CartItemSummary{}}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return newCartDetail(cart), nil
}

func (s *service) AddItem(ctx context.Context, input AddItemInput) (*CartDetail, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.RentalStart != nil && input.RentalEnd != nil && input.RentalEnd.Before(*input.RentalStart) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rental end cannot be before rental start")
	}

	product, err := s.products.FindProduct(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	var detail *CartDetail
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := repo.FindActiveCart(ctx, input.CustomerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart, err = repo.CreateCart(ctx, &models.CartRecord{
				CustomerID:  input.CustomerID,
				RentalStart: input.RentalStart,
				RentalEnd:   input.RentalEnd,
			})
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		if existing := findItemByProduct(cart.Items, product.ID); existing != nil {
			quantity := existing.Quantity + input.Quantity
			updates := map[string]any{
				"quantity":         quantity,
				"line_total_cents": quantity * existing.UnitPriceCents,
			}
			if err := repo.UpdateCartItem(ctx, existing.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
			}
		} else {
			item := &models.CartItem{
				CartID:         cart.ID,
				ProductID:      product.ID,
				ProductName:    product.Name,
				Quantity:       input.Quantity,
				UnitPriceCents: product.DailyRateCents,
				LineTotalCents: input.Quantity * product.DailyRateCents,
			}
			if err := repo.CreateCartItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
			}
		}

		updates := map[string]any{}
		if input.RentalStart != nil {
			updates["rental_start"] = *input.RentalStart
		}
		if input.RentalEnd != nil {
			updates["rental_end"] = *input.RentalEnd
		}
		detail, err = s.refreshTotals(ctx, repo, input.CustomerID, updates)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *service) RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) (*CartDetail, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}

	var detail *CartDetail
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cart, err := repo.FindActiveCart(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart is empty")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if err := repo.DeleteCartItem(ctx, cart.ID, itemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
		}
		detail, err = s.refreshTotals(ctx, repo, customerID, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// Checkout converts the active cart into a draft rental order, marking the
// cart converted so a fresh one opens on the next add.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	user, err := s.users.FindUserByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}

	var result *CheckoutResult
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		cart, err := repo.FindActiveCart(ctx, input.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if len(cart.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}
		if cart.RentalStart == nil || cart.RentalEnd == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "rental dates are required before checkout")
		}
		if cart.RentalEnd.Before(*cart.RentalStart) {
			return pkgerrors.New(pkgerrors.CodeValidation, "rental end cannot be before rental start")
		}

		number, err := ordersRepo.NextOrderNumber(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate order number")
		}

		total := 0
		items := make([]models.OrderLineItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			productID := item.ProductID
			items = append(items, models.OrderLineItem{
				ProductID:      &productID,
				ProductName:    item.ProductName,
				Quantity:       item.Quantity,
				UnitPriceCents: item.UnitPriceCents,
				TotalCents:     item.LineTotalCents,
			})
			total += item.LineTotalCents
		}

		order, err := ordersRepo.CreateOrder(ctx, &models.RentalOrder{
			OrderNumber:   number,
			CustomerID:    user.ID,
			CustomerName:  user.FullName(),
			CustomerEmail: user.Email,
			Status:        enums.OrderStatusDraft,
			RentalStart:   cart.RentalStart,
			RentalEnd:     cart.RentalEnd,
			TotalCents:    total,
			Items:         items,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		now := time.Now()
		if err := repo.UpdateCart(ctx, cart.ID, map[string]any{"converted_at": now}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close cart")
		}

		result = &CheckoutResult{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			TotalCents:  order.TotalCents,
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         actorRef(input.Actor),
			Data: payloads.OrderCreatedEvent{
				OrderID:       order.ID,
				OrderNumber:   order.OrderNumber,
				CustomerID:    order.CustomerID,
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
	return result, nil
}

// refreshTotals recomputes the cart total from its current items and applies
// any pending header updates in the same write.
func (s *service) refreshTotals(ctx context.Context, repo Repository, customerID uuid.UUID, updates map[string]any) (*CartDetail, error) {
	cart, err := repo.FindActiveCart(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart")
	}
	total := 0
	for _, item := range cart.Items {
		total += item.LineTotalCents
	}
	if updates == nil {
		updates = map[string]any{}
	}
	updates["total_cents"] = total
	if err := repo.UpdateCart(ctx, cart.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart totals")
	}
	cart.TotalCents = total
	if start, ok := updates["rental_start"].(time.Time); ok {
		cart.RentalStart = &start
	}
	if end, ok := updates["rental_end"].(time.Time); ok {
		cart.RentalEnd = &end
	}
	return newCartDetail(cart), nil
}

func findItemByProduct(items []models.CartItem, productID uuid.UUID) *models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			return &items[i]
		}
	}
	return nil
}

func actorRef(actor orders.Actor) *outbox.ActorRef {
	if actor.UserID == uuid.Nil {
		return nil
	}
	return &outbox.ActorRef{UserID: actor.UserID, Role: actor.Role.String()}
}

func newCartDetail(cart *models.CartRecord) *CartDetail {
	detail := &CartDetail{
		ID:          cart.ID,
		RentalStart: cart.RentalStart,
		RentalEnd:   cart.RentalEnd,
		TotalCents:  cart.TotalCents,
		Items:       make([]CartItemSummary, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		detail.Items = append(detail.Items, CartItemSummary{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: item.LineTotalCents,
		})
	}
	return detail
}
