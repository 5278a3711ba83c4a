package order

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/shop-backend/internal/cache"
	"github.com/magabrotheeeer/shop-backend/internal/events"
	"github.com/magabrotheeeer/shop-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/shop-backend/internal/metrics"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProductByName(ctx context.Context, name string) (*models.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockRepository) CreateOrder(ctx context.Context, productID int64, quantity int) (int64, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) AcceptOrder(ctx context.Context, orderID int64) (*models.AcceptedOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AcceptedOrder), args.Error(1)
}

func (m *MockRepository) ListOrders(ctx context.Context) ([]models.OrderView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderView), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderEvent(ctx context.Context, ev events.OrderEvent) error {
	return m.Called(ctx, ev).Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

type fakeGate struct{}

func (fakeGate) RequireAdmin(_ context.Context, token string) (*jwt.CustomClaims, error) {
	switch token {
	case "admin":
		return &jwt.CustomClaims{IsAdmin: true}, nil
	case "expired":
		return nil, jwt.ErrTokenExpired
	default:
		return nil, models.ErrForbidden
	}
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	repo      *MockRepository
	publisher *MockPublisher
	cache     *MockInvalidator
	metrics   *metrics.Metrics
	service   *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:      new(MockRepository),
		publisher: new(MockPublisher),
		cache:     new(MockInvalidator),
		metrics:   metrics.New(),
	}
	f.service = NewService(f.repo, fakeGate{}, f.cache, f.publisher, f.metrics, newNoopLogger())
	return f
}

func TestService_Place(t *testing.T) {
	atlas := &models.Product{ID: 7, Name: "Atlas", CategoryID: 1, Price: 9.99, Stock: 3}

	tests := []struct {
		name       string
		input      models.PlaceOrderInput
		setup      func(f *fixture)
		wantID     int64
		wantErr    error
		wantReason string
	}{
		{
			name:  "placed",
			input: models.PlaceOrderInput{ProductName: " Atlas ", Quantity: 2},
			setup: func(f *fixture) {
				f.repo.On("GetProductByName", mock.Anything, "Atlas").Return(atlas, nil).Once()
				f.repo.On("CreateOrder", mock.Anything, int64(7), 2).Return(int64(11), nil).Once()
				f.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(ev events.OrderEvent) bool {
					return ev.Type == events.TypeOrderPlaced && ev.OrderID == 11 && ev.ProductName == "Atlas"
				})).Return(nil).Once()
			},
			wantID: 11,
		},
		{
			name:  "whole stock is allowed",
			input: models.PlaceOrderInput{ProductName: "Atlas", Quantity: 3},
			setup: func(f *fixture) {
				f.repo.On("GetProductByName", mock.Anything, "Atlas").Return(atlas, nil).Once()
				f.repo.On("CreateOrder", mock.Anything, int64(7), 3).Return(int64(12), nil).Once()
				f.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
			wantID: 12,
		},
		{
			name:  "insufficient stock creates no order",
			input: models.PlaceOrderInput{ProductName: "Atlas", Quantity: 4},
			setup: func(f *fixture) {
				f.repo.On("GetProductByName", mock.Anything, "Atlas").Return(atlas, nil).Once()
			},
			wantErr:    models.ErrInsufficientStock,
			wantReason: metrics.ReasonInsufficientStock,
		},
		{
			name:  "unknown product",
			input: models.PlaceOrderInput{ProductName: "Ghost", Quantity: 1},
			setup: func(f *fixture) {
				f.repo.On("GetProductByName", mock.Anything, "Ghost").Return(nil, models.ErrNotFound).Once()
			},
			wantErr:    models.ErrNotFound,
			wantReason: metrics.ReasonNotFound,
		},
		{
			name:       "zero quantity",
			input:      models.PlaceOrderInput{ProductName: "Atlas", Quantity: 0},
			setup:      func(_ *fixture) {},
			wantErr:    models.ErrInvalidInput,
			wantReason: metrics.ReasonInvalidInput,
		},
		{
			name:       "negative quantity",
			input:      models.PlaceOrderInput{ProductName: "Atlas", Quantity: -1},
			setup:      func(_ *fixture) {},
			wantErr:    models.ErrInvalidInput,
			wantReason: metrics.ReasonInvalidInput,
		},
		{
			name:       "quantity does not fit integer column",
			input:      models.PlaceOrderInput{ProductName: "Atlas", Quantity: 3000000000},
			setup:      func(_ *fixture) {},
			wantErr:    models.ErrInvalidInput,
			wantReason: metrics.ReasonInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			id, err := f.service.Place(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OrderRejections.WithLabelValues("place", tt.wantReason)))
				assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.OrdersPlaced))
				f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
				assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OrdersPlaced))
			}
			f.repo.AssertExpectations(t)
			f.publisher.AssertExpectations(t)
		})
	}
}

func TestService_Accept(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		setup         func(f *fixture)
		wantRemaining int
		wantErr       error
		wantReason    string
	}{
		{
			name:  "accepted",
			token: "admin",
			setup: func(f *fixture) {
				f.repo.On("AcceptOrder", mock.Anything, int64(11)).
					Return(&models.AcceptedOrder{OrderID: 11, ProductID: 7, Quantity: 2, RemainingStock: 1}, nil).Once()
				f.cache.On("Invalidate", mock.Anything, []string{cache.KeyProducts}).Return(nil).Once()
				f.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(ev events.OrderEvent) bool {
					return ev.Type == events.TypeOrderAccepted && ev.RemainingStock != nil && *ev.RemainingStock == 1
				})).Return(nil).Once()
			},
			wantRemaining: 1,
		},
		{
			name:  "cache failure does not fail accept",
			token: "admin",
			setup: func(f *fixture) {
				f.repo.On("AcceptOrder", mock.Anything, int64(11)).
					Return(&models.AcceptedOrder{OrderID: 11, ProductID: 7, Quantity: 2, RemainingStock: 0}, nil).Once()
				f.cache.On("Invalidate", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
				f.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantRemaining: 0,
		},
		{
			name:       "not admin",
			token:      "user",
			setup:      func(_ *fixture) {},
			wantErr:    models.ErrForbidden,
			wantReason: metrics.ReasonForbidden,
		},
		{
			name:       "expired token",
			token:      "expired",
			setup:      func(_ *fixture) {},
			wantErr:    jwt.ErrTokenExpired,
			wantReason: metrics.ReasonUnauthenticated,
		},
		{
			name:  "already accepted or missing",
			token: "admin",
			setup: func(f *fixture) {
				f.repo.On("AcceptOrder", mock.Anything, int64(11)).Return(nil, models.ErrNotFound).Once()
			},
			wantErr:    models.ErrNotFound,
			wantReason: metrics.ReasonNotFound,
		},
		{
			name:  "insufficient stock",
			token: "admin",
			setup: func(f *fixture) {
				f.repo.On("AcceptOrder", mock.Anything, int64(11)).Return(nil, models.ErrInsufficientStock).Once()
			},
			wantErr:    models.ErrInsufficientStock,
			wantReason: metrics.ReasonInsufficientStock,
		},
		{
			name:  "store failure",
			token: "admin",
			setup: func(f *fixture) {
				f.repo.On("AcceptOrder", mock.Anything, int64(11)).Return(nil, errors.New("conn reset")).Once()
			},
			wantErr:    errors.New("conn reset"),
			wantReason: metrics.ReasonInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			remaining, err := f.service.Accept(context.Background(), tt.token, 11)
			if tt.wantErr != nil {
				require.Error(t, err)
				if tt.wantReason == metrics.ReasonInternal {
					assert.ErrorContains(t, err, tt.wantErr.Error())
				} else {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OrderRejections.WithLabelValues("accept", tt.wantReason)))
				f.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
				f.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantRemaining, remaining)
				assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OrdersAccepted))
			}
			if tt.token != "admin" {
				f.repo.AssertNotCalled(t, "AcceptOrder", mock.Anything, mock.Anything)
			}
			f.repo.AssertExpectations(t)
			f.cache.AssertExpectations(t)
			f.publisher.AssertExpectations(t)
		})
	}
}

func TestService_List(t *testing.T) {
	f := newFixture()
	want := []models.OrderView{{ID: 1, ProductName: "Atlas", Quantity: 2, Status: models.OrderStatusPending}}
	f.repo.On("ListOrders", mock.Anything).Return(want, nil).Once()

	got, err := f.service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	f.repo.On("ListOrders", mock.Anything).Return(nil, errors.New("db down")).Once()
	_, err = f.service.List(context.Background())
	require.ErrorContains(t, err, "services.order.List")
}
