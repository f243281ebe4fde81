package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appsync "github.com/webshop/backend/internal/application/sync"
	"github.com/webshop/backend/internal/domain/sales"
	"github.com/webshop/backend/internal/domain/shared"
	"github.com/webshop/backend/internal/interfaces/http/dto"
	"github.com/webshop/backend/internal/interfaces/http/middleware"
)

// OrderHandler exposes order creation and lookup endpoints
type OrderHandler struct {
	BaseHandler
	orderService *appsync.OrderSyncService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *appsync.OrderSyncService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// OrderItemResponse represents an order line in responses
type OrderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	ProductCode string `json:"product_code,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Amount      int64  `json:"amount"`
}

// OrderResponse represents an order in responses
type OrderResponse struct {
	ID            string              `json:"id"`
	Status        string              `json:"status"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone,omitempty"`
	CustomerEmail string              `json:"customer_email,omitempty"`
	Address       string              `json:"address,omitempty"`
	Note          string              `json:"note,omitempty"`
	Total         int64               `json:"total"`
	RemoteOrderID *int64              `json:"remote_order_id,omitempty"`
	RemoteCode    string              `json:"remote_code,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	dto.TimestampResponse
}

func toOrderResponse(order *sales.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}
	return OrderResponse{
		ID:            order.ID.String(),
		Status:        order.Status.String(),
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		CustomerEmail: order.CustomerEmail,
		Address:       order.Address,
		Note:          order.Note,
		Total:         order.Total,
		RemoteOrderID: order.RemoteOrderID,
		RemoteCode:    order.RemoteCode,
		Items: items,
		TimestampResponse: dto.TimestampResponse{
			CreatedAt: order.CreatedAt,
			UpdatedAt: order.UpdatedAt,
		},
	}
}

// CreateOrder creates a local order and mirrors it to the POS
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req appsync.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.orderService.CreateOrderAndSync(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, appsync.ErrProductNotFound) {
			h.UnprocessableEntity(c, dto.ErrCodeBusinessRule, err.Error())
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetOrder returns a single order with its items
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOrderResponse(order))
}

// ListOrders returns a page of orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	page, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]OrderResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, toOrderResponse(&page.Items[i]))
	}

	h.SuccessWithMeta(c, responses, page.Total, req.Page, req.PageSize)
}
