package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/webshop/backend/internal/domain/catalog"
	"github.com/webshop/backend/internal/domain/integration"
	"github.com/webshop/backend/internal/domain/sales"
	"github.com/webshop/backend/internal/domain/shared"
)

// ErrProductNotFound aborts order creation when a requested product is absent
var ErrProductNotFound = errors.New("sync: order references unknown product")

// OrderSyncConfig contains the POS identity stamped on mirrored orders
type OrderSyncConfig struct {
	BranchID      int64
	SaleChannelID int64
}

// OrderSyncService creates orders locally and mirrors them to the POS.
// The local write is transactional and all-or-nothing; the remote mirror
// is best-effort and never blocks local commerce.
type OrderSyncService struct {
	client      integration.POSClient
	orderRepo   sales.OrderRepository
	productRepo catalog.ProductRepository
	config      OrderSyncConfig
	logger      *zap.Logger
}

// NewOrderSyncService creates a new OrderSyncService
func NewOrderSyncService(
	client integration.POSClient,
	orderRepo sales.OrderRepository,
	productRepo catalog.ProductRepository,
	config OrderSyncConfig,
	logger *zap.Logger,
) *OrderSyncService {
	return &OrderSyncService{
		client:      client,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		config:      config,
		logger:      logger,
	}
}

// CreateOrderAndSync creates the order with its items in one local
// transaction, then attempts the POS mirror. Mirror failures surface as
// RemoteSynced=false on an otherwise successful result.
func (s *OrderSyncService) CreateOrderAndSync(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	order, remoteLines, err := s.buildOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	result := &CreateOrderResult{
		OrderID: order.ID,
		Status:  order.Status.String(),
		Total:   order.Total,
	}

	// Orders with no remote-linked items have nothing to mirror.
	if len(remoteLines) == 0 {
		return result, nil
	}

	remoteResult, err := s.client.CreateOrder(ctx, &integration.RemoteOrderRequest{
		BranchID:      s.config.BranchID,
		SaleChannelID: s.config.SaleChannelID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Description:   req.Note,
		Lines:         remoteLines,
	})
	if err != nil {
		s.logger.Warn("order mirror to POS failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
		return result, nil
	}

	order.MarkSynced(remoteResult.RemoteOrderID, remoteResult.Code)
	if err := s.orderRepo.Save(ctx, order); err != nil {
		s.logger.Error("failed to record remote order identifiers",
			zap.String("order_id", order.ID.String()),
			zap.Int64("remote_order_id", remoteResult.RemoteOrderID),
			zap.Error(err))
		return result, nil
	}

	result.RemoteOrderID = order.RemoteOrderID
	result.RemoteCode = order.RemoteCode
	result.RemoteSynced = true
	return result, nil
}

// buildOrder resolves every requested product and assembles the order
// together with the mirror payload lines for remote-linked products
func (s *OrderSyncService) buildOrder(ctx context.Context, req CreateOrderRequest) (*sales.Order, []integration.RemoteOrderLine, error) {
	order, err := sales.NewOrder(req.CustomerName, req.CustomerPhone, s.config.BranchID, s.config.SaleChannelID)
	if err != nil {
		return nil, nil, err
	}
	order.CustomerEmail = req.CustomerEmail
	order.Address = req.Address
	order.Note = req.Note

	var remoteLines []integration.RemoteOrderLine
	for _, itemReq := range req.Items {
		product, err := s.productRepo.FindByID(ctx, itemReq.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, nil, fmt.Errorf("%w: %s", ErrProductNotFound, itemReq.ProductID)
			}
			return nil, nil, err
		}

		item, err := sales.NewOrderItem(order.ID, product.ID, product.Title, product.Code, itemReq.Quantity, product.Price)
		if err != nil {
			return nil, nil, err
		}
		order.AddItem(item)

		if product.RemoteID != nil {
			remoteLines = append(remoteLines, integration.RemoteOrderLine{
				ProductRemoteID: *product.RemoteID,
				ProductCode:     product.Code,
				ProductName:     product.Title,
				Quantity:        itemReq.Quantity,
				Price:           decimal.NewFromInt(product.Price),
			})
		}
	}

	return order, remoteLines, nil
}

// GetOrder returns an order with its items
func (s *OrderSyncService) GetOrder(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// ListOrders returns a page of orders
func (s *OrderSyncService) ListOrders(ctx context.Context, filter shared.Filter) (*shared.Paginated[sales.Order], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(orders, total, filter.Page, filter.PageSize)
	return &page, nil
}
