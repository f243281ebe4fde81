package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/webshop/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByRemoteOrderID finds an order by its POS identifier
	FindByRemoteOrderID(ctx context.Context, remoteOrderID int64) (*Order, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Create persists a new order together with its items in one transaction
	Create(ctx context.Context, order *Order) error

	// Save updates an existing order
	Save(ctx context.Context, order *Order) error

	// UpdateStatusByRemoteOrderID updates the status of the order matching
	// the remote identifier. It returns the number of rows affected; zero
	// means no local order mirrors that remote order.
	UpdateStatusByRemoteOrderID(ctx context.Context, remoteOrderID int64, status OrderStatus) (int64, error)
}
