package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/webshop/backend/internal/domain/shared"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipping  OrderStatus = "SHIPPING"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusNew, OrderStatusConfirmed, OrderStatusShipping, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"type:varchar(200);not null"`
	ProductCode string    `gorm:"type:varchar(50)"`
	Quantity    int       `gorm:"not null"`
	UnitPrice   int64     `gorm:"not null"` // minor currency units
	Amount      int64     `gorm:"not null"` // Quantity * UnitPrice
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order line item
func NewOrderItem(orderID, productID uuid.UUID, productName, productCode string, quantity int, unitPrice int64) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice < 0 {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		ProductCode: productCode,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      int64(quantity) * unitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Order represents a customer order. Orders are created once together
// with their items; after creation only the status (and the remote
// mirror identifiers) change.
type Order struct {
	shared.BaseEntity
	RemoteOrderID *int64      `gorm:"uniqueIndex"`
	RemoteCode    string      `gorm:"type:varchar(50)"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;default:'NEW'"`
	BranchID      int64       `gorm:"not null;default:0"`
	SaleChannelID int64       `gorm:"not null;default:0"`
	CustomerName  string      `gorm:"type:varchar(200);not null"`
	CustomerPhone string      `gorm:"type:varchar(50)"`
	CustomerEmail string      `gorm:"type:varchar(200)"`
	Address       string      `gorm:"type:text"`
	Note          string      `gorm:"type:text"`
	Total         int64       `gorm:"not null;default:0"` // minor currency units
	Items         []OrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in the NEW status
func NewOrder(customerName, customerPhone string, branchID, saleChannelID int64) (*Order, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}

	return &Order{
		BaseEntity:    shared.NewBaseEntity(),
		Status:        OrderStatusNew,
		BranchID:      branchID,
		SaleChannelID: saleChannelID,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
	}, nil
}

// AddItem appends a line item and updates the order total
func (o *Order) AddItem(item *OrderItem) {
	item.OrderID = o.ID
	o.Items = append(o.Items, *item)
	o.Total += item.Amount
}

// MarkSynced records the identifiers assigned by the POS mirror
func (o *Order) MarkSynced(remoteOrderID int64, remoteCode string) {
	o.RemoteOrderID = &remoteOrderID
	o.RemoteCode = remoteCode
	o.UpdatedAt = time.Now()
}

// SetStatus applies a status change. Status updates driven by the POS
// are last-write-wins by remote order ID; no transition graph is
// enforced here.
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}
