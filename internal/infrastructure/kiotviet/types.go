package kiotviet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire types for the KiotViet public API. The API reports timestamps as
// local date-times without a zone, sometimes with fractional seconds.

const (
	timeLayout           = "2006-01-02T15:04:05"
	timeLayoutFractional = "2006-01-02T15:04:05.0000000"
)

func parseRemoteTime(value string) time.Time {
	for _, layout := range []string{timeLayoutFractional, timeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

type productListResponse struct {
	Total    int           `json:"total"`
	PageSize int           `json:"pageSize"`
	Data     []wireProduct `json:"data"`
}

type wireProduct struct {
	ID           int64           `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	BasePrice    decimal.Decimal `json:"basePrice"`
	Description  string          `json:"description"`
	IsActive     bool            `json:"isActive"`
	ModifiedDate string          `json:"modifiedDate"`
	Images       []string        `json:"images"`
	Inventories  []wireInventory `json:"inventories"`
}

type wireInventory struct {
	BranchID int64           `json:"branchId"`
	OnHand   decimal.Decimal `json:"onHand"`
}

type orderRequest struct {
	BranchID      int64           `json:"branchId"`
	SaleChannelID int64           `json:"saleChannelId,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
	Description   string          `json:"description,omitempty"`
	OrderDetails  []orderDetail   `json:"orderDetails"`
	Customer      *customerInline `json:"customer,omitempty"`
}

type orderDetail struct {
	ProductID   int64           `json:"productId"`
	ProductCode string          `json:"productCode,omitempty"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type customerInline struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber,omitempty"`
}

type orderResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}

type customerRequest struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	BranchID      int64  `json:"branchId,omitempty"`
}

type customerResponse struct {
	ID            int64  `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber"`
}

type webhookListResponse struct {
	Total int           `json:"total"`
	Data  []wireWebhook `json:"data"`
}

type wireWebhook struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	IsActive bool   `json:"isActive"`
}

type webhookRegisterRequest struct {
	Webhook webhookRegisterBody `json:"webhook"`
}

type webhookRegisterBody struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Secret string `json:"secret,omitempty"`
}
