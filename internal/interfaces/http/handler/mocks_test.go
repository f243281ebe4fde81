package handler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/webshop/backend/internal/domain/catalog"
	"github.com/webshop/backend/internal/domain/integration"
	"github.com/webshop/backend/internal/domain/sales"
	"github.com/webshop/backend/internal/domain/shared"
)

// mustLinkedProduct builds a catalog product that mirrors a POS product
func mustLinkedProduct(t *testing.T, remoteID int64, title string, price int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(title, price)
	require.NoError(t, err)
	product.RemoteID = &remoteID
	product.Code = "SP001"
	return product
}

// MockPOSClient implements integration.POSClient for handler tests
type MockPOSClient struct {
	mock.Mock
}

var _ integration.POSClient = (*MockPOSClient)(nil)

func (m *MockPOSClient) ListProducts(ctx context.Context, pageIndex, pageSize int, modifiedSince *time.Time) (*integration.ProductPage, error) {
	args := m.Called(ctx, pageIndex, pageSize, modifiedSince)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ProductPage), args.Error(1)
}

func (m *MockPOSClient) GetProductInventory(ctx context.Context, remoteID int64) (int, error) {
	args := m.Called(ctx, remoteID)
	return args.Int(0), args.Error(1)
}

func (m *MockPOSClient) CreateOrder(ctx context.Context, req *integration.RemoteOrderRequest) (*integration.RemoteOrderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.RemoteOrderResult), args.Error(1)
}

func (m *MockPOSClient) CreateCustomer(ctx context.Context, req *integration.RemoteCustomerRequest) (*integration.RemoteCustomer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.RemoteCustomer), args.Error(1)
}

func (m *MockPOSClient) TestConnection(ctx context.Context) (*integration.ConnectionStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ConnectionStatus), args.Error(1)
}

func (m *MockPOSClient) ListWebhooks(ctx context.Context) ([]integration.RemoteWebhook, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.RemoteWebhook), args.Error(1)
}

func (m *MockPOSClient) RegisterWebhook(ctx context.Context, req *integration.RemoteWebhookRequest) (*integration.RemoteWebhook, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.RemoteWebhook), args.Error(1)
}

func (m *MockPOSClient) DeleteWebhook(ctx context.Context, remoteID int64) error {
	args := m.Called(ctx, remoteID)
	return args.Error(0)
}

// MockProductRepository implements catalog.ProductRepository for handler tests
type MockProductRepository struct {
	mock.Mock
}

var _ catalog.ProductRepository = (*MockProductRepository)(nil)

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByRemoteID(ctx context.Context, remoteID int64) (*catalog.Product, error) {
	args := m.Called(ctx, remoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository implements catalog.CategoryRepository for handler tests
type MockCategoryRepository struct {
	mock.Mock
}

var _ catalog.CategoryRepository = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByRemoteID(ctx context.Context, remoteID int64) (*catalog.Category, error) {
	args := m.Called(ctx, remoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderRepository implements sales.OrderRepository for handler tests
type MockOrderRepository struct {
	mock.Mock
}

var _ sales.OrderRepository = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByRemoteOrderID(ctx context.Context, remoteOrderID int64) (*sales.Order, error) {
	args := m.Called(ctx, remoteOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *sales.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatusByRemoteOrderID(ctx context.Context, remoteOrderID int64, status sales.OrderStatus) (int64, error) {
	args := m.Called(ctx, remoteOrderID, status)
	return args.Get(0).(int64), args.Error(1)
}

// openGate always allows; deniedGate always refuses with a fixed window.
type openGate struct{}

func (openGate) Allow(context.Context, string) error { return nil }

type deniedGate struct {
	retryAfter time.Duration
}

func (g deniedGate) Allow(_ context.Context, key string) error {
	return &shared.RateLimitedError{Key: key, RetryAfter: g.retryAfter}
}
