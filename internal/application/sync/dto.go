package sync

import "github.com/google/uuid"

// SyncSummary aggregates the outcome of one catalog sync run
type SyncSummary struct {
	Processed int `json:"processed"`
	Filtered  int `json:"filtered"`
	Synced    int `json:"synced"`
}

// CreateOrderItemRequest is one requested line in a new order
type CreateOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest is the input for creating and mirroring an order
type CreateOrderRequest struct {
	CustomerName  string                   `json:"customer_name" binding:"required"`
	CustomerPhone string                   `json:"customer_phone"`
	CustomerEmail string                   `json:"customer_email" binding:"omitempty,email"`
	Address       string                   `json:"address"`
	Note          string                   `json:"note"`
	Items         []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderResult reports the created order and its mirror outcome.
// RemoteSynced is false when the POS mirror failed or was skipped; the
// local order exists either way.
type CreateOrderResult struct {
	OrderID       uuid.UUID `json:"order_id"`
	Status        string    `json:"status"`
	Total         int64     `json:"total"`
	RemoteOrderID *int64    `json:"remote_order_id,omitempty"`
	RemoteCode    string    `json:"remote_code,omitempty"`
	RemoteSynced  bool      `json:"remote_synced"`
}

// WebhookResult aggregates the outcome of one webhook envelope
type WebhookResult struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}
