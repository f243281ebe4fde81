package integration

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// POSClient port
// ---------------------------------------------------------------------------

// POSClient is the outbound port to the point-of-sale public API.
// Implementations attach authentication and retailer identity to every
// call; they translate wire payloads to and from the value types below
// and surface HTTP failures as *RemoteAPIError.
type POSClient interface {
	// ListProducts fetches one page of the remote catalog. pageIndex is
	// zero-based. When modifiedSince is non-nil only products changed
	// after that instant are returned.
	ListProducts(ctx context.Context, pageIndex, pageSize int, modifiedSince *time.Time) (*ProductPage, error)

	// GetProductInventory returns the on-hand quantity for a remote product.
	GetProductInventory(ctx context.Context, remoteID int64) (int, error)

	// CreateOrder mirrors a locally created order to the POS.
	CreateOrder(ctx context.Context, req *RemoteOrderRequest) (*RemoteOrderResult, error)

	// CreateCustomer registers a customer on the POS.
	CreateCustomer(ctx context.Context, req *RemoteCustomerRequest) (*RemoteCustomer, error)

	// TestConnection verifies that credentials and retailer identity are accepted.
	TestConnection(ctx context.Context) (*ConnectionStatus, error)

	// ListWebhooks returns the webhook subscriptions registered on the POS.
	ListWebhooks(ctx context.Context) ([]RemoteWebhook, error)

	// RegisterWebhook subscribes a callback URL to a POS event type.
	RegisterWebhook(ctx context.Context, req *RemoteWebhookRequest) (*RemoteWebhook, error)

	// DeleteWebhook removes a webhook subscription by its remote identifier.
	DeleteWebhook(ctx context.Context, remoteID int64) error
}

// ---------------------------------------------------------------------------
// Catalog value types
// ---------------------------------------------------------------------------

// RemoteProduct is a product record as reported by the POS catalog.
type RemoteProduct struct {
	RemoteID     int64
	Code         string
	Name         string
	CategoryID   int64
	CategoryName string
	BasePrice    decimal.Decimal
	Description  string
	Images       []string
	Active       bool
	ModifiedAt   time.Time
}

// ProductPage is one page of the remote catalog plus the overall total.
type ProductPage struct {
	Items []RemoteProduct
	Total int
}

// ---------------------------------------------------------------------------
// Order value types
// ---------------------------------------------------------------------------

// RemoteOrderLine is a single order detail entry in an outbound order.
type RemoteOrderLine struct {
	ProductRemoteID int64
	ProductCode     string
	ProductName     string
	Quantity        int
	Price           decimal.Decimal
}

// RemoteOrderRequest is the payload mirrored to the POS order endpoint.
type RemoteOrderRequest struct {
	BranchID      int64
	SaleChannelID int64
	CustomerName  string
	CustomerPhone string
	Description   string
	Lines         []RemoteOrderLine
}

// RemoteOrderResult identifies the order record created on the POS.
type RemoteOrderResult struct {
	RemoteOrderID int64
	Code          string
}

// RemoteCustomerRequest is the payload for registering a POS customer.
type RemoteCustomerRequest struct {
	Name     string
	Phone    string
	Email    string
	Address  string
	BranchID int64
}

// RemoteCustomer is a customer record as reported by the POS.
type RemoteCustomer struct {
	RemoteID int64
	Code     string
	Name     string
	Phone    string
}

// ---------------------------------------------------------------------------
// Connection and webhook management
// ---------------------------------------------------------------------------

// ConnectionStatus is the outcome of a connectivity probe.
type ConnectionStatus struct {
	Success bool
	Message string
}

// RemoteWebhook is a webhook subscription registered on the POS.
type RemoteWebhook struct {
	RemoteID int64
	Type     string
	URL      string
	IsActive bool
}

// RemoteWebhookRequest registers a callback URL for a POS event type.
type RemoteWebhookRequest struct {
	Type   string
	URL    string
	Secret string
}
