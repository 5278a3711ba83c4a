// Package order содержит жизненный цикл заказа: оформление, подтверждение
// администратором со списанием остатка и просмотр списка заказов.
//
// Заказ проходит единственный переход Pending -> Accepted. Оформление не резервирует
// товар: остаток проверяется при оформлении и повторно, под блокировкой, при подтверждении.
package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/shop-backend/internal/cache"
	"github.com/magabrotheeeer/shop-backend/internal/events"
	"github.com/magabrotheeeer/shop-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
	"github.com/magabrotheeeer/shop-backend/internal/lib/validation"
	"github.com/magabrotheeeer/shop-backend/internal/metrics"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// Repository определяет методы хранилища, нужные заказам.
type Repository interface {
	GetProductByName(ctx context.Context, name string) (*models.Product, error)
	CreateOrder(ctx context.Context, productID int64, quantity int) (int64, error)
	AcceptOrder(ctx context.Context, orderID int64) (*models.AcceptedOrder, error)
	ListOrders(ctx context.Context) ([]models.OrderView, error)
}

// Authorizer проверяет права администратора.
type Authorizer interface {
	RequireAdmin(ctx context.Context, token string) (*jwt.CustomClaims, error)
}

// Invalidator сбрасывает закешированные списки.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// Recorder учитывает исходы операций с заказами.
type Recorder interface {
	OrderPlaced()
	OrderAccepted()
	OrderRejected(operation, reason string)
}

// Service реализует операции с заказами.
type Service struct {
	repo      Repository
	gate      Authorizer
	cache     Invalidator
	publisher events.Publisher
	metrics   Recorder
	log       *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, gate Authorizer, cache Invalidator, publisher events.Publisher, metrics Recorder, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		gate:      gate,
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
	}
}

// Place оформляет заказ на quantity единиц товара с именем productName
// и возвращает ID заказа в статусе Pending.
func (s *Service) Place(ctx context.Context, in models.PlaceOrderInput) (int64, error) {
	const op = "services.order.Place"

	id, product, err := s.place(ctx, in)
	if err != nil {
		s.metrics.OrderRejected("place", reason(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.OrderPlaced()
	s.log.Info("order placed",
		slog.Int64("order_id", id),
		slog.Int64("product_id", product.ID),
		slog.Int("quantity", in.Quantity),
	)

	ev := events.NewOrderEvent(events.TypeOrderPlaced, id, product.ID, in.Quantity)
	ev.ProductName = product.Name
	s.publish(ctx, ev)
	return id, nil
}

func (s *Service) place(ctx context.Context, in models.PlaceOrderInput) (int64, *models.Product, error) {
	in.ProductName = strings.TrimSpace(in.ProductName)
	if err := validation.Struct(in); err != nil {
		return 0, nil, err
	}

	product, err := s.repo.GetProductByName(ctx, in.ProductName)
	if err != nil {
		return 0, nil, err
	}
	if in.Quantity > product.Stock {
		return 0, nil, fmt.Errorf("%w: requested %d, available %d",
			models.ErrInsufficientStock, in.Quantity, product.Stock)
	}

	id, err := s.repo.CreateOrder(ctx, product.ID, in.Quantity)
	if err != nil {
		return 0, nil, err
	}
	return id, product, nil
}

// Accept подтверждает заказ и возвращает оставшийся остаток товара.
// Права администратора проверяются до обращения к хранилищу.
func (s *Service) Accept(ctx context.Context, token string, orderID int64) (int, error) {
	const op = "services.order.Accept"
	if _, err := s.gate.RequireAdmin(ctx, token); err != nil {
		s.metrics.OrderRejected("accept", reason(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	accepted, err := s.repo.AcceptOrder(ctx, orderID)
	if err != nil {
		s.metrics.OrderRejected("accept", reason(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.OrderAccepted()
	s.log.Info("order accepted",
		slog.Int64("order_id", orderID),
		slog.Int64("product_id", accepted.ProductID),
		slog.Int("remaining_stock", accepted.RemainingStock),
	)

	if err := s.cache.Invalidate(ctx, cache.KeyProducts); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cache.KeyProducts), sl.Err(err))
	}

	ev := events.NewOrderEvent(events.TypeOrderAccepted, orderID, accepted.ProductID, accepted.Quantity)
	remaining := accepted.RemainingStock
	ev.RemainingStock = &remaining
	s.publish(ctx, ev)
	return accepted.RemainingStock, nil
}

// List возвращает все заказы.
func (s *Service) List(ctx context.Context) ([]models.OrderView, error) {
	const op = "services.order.List"
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// Заказ уже сохранён, поэтому сбой публикации только логируется.
func (s *Service) publish(ctx context.Context, ev events.OrderEvent) {
	if err := s.publisher.PublishOrderEvent(ctx, ev); err != nil {
		s.log.Warn("failed to publish order event",
			slog.String("type", ev.Type),
			slog.Int64("order_id", ev.OrderID),
			sl.Err(err),
		)
	}
}

func reason(err error) string {
	switch {
	case errors.Is(err, models.ErrInsufficientStock):
		return metrics.ReasonInsufficientStock
	case errors.Is(err, models.ErrNotFound):
		return metrics.ReasonNotFound
	case errors.Is(err, models.ErrInvalidInput):
		return metrics.ReasonInvalidInput
	case errors.Is(err, models.ErrForbidden):
		return metrics.ReasonForbidden
	case errors.Is(err, jwt.ErrTokenRequired), errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenInvalid):
		return metrics.ReasonUnauthenticated
	default:
		return metrics.ReasonInternal
	}
}
