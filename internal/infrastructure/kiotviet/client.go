package kiotviet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/webshop/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the POS API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// retailerHeader carries the retailer identity on every API call
const retailerHeader = "Retailer"

// Client implements integration.POSClient against the KiotViet public
// API. It attaches a bearer token from the token manager and the
// retailer header to every request; non-2xx responses surface as
// *integration.RemoteAPIError and are never retried here.
type Client struct {
	config     *Config
	tokens     *TokenManager
	httpClient *http.Client
}

var _ integration.POSClient = (*Client)(nil)

// NewClient creates a KiotViet API client
func NewClient(config *Config, tokens *TokenManager, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second}
	}
	return &Client{
		config:     config,
		tokens:     tokens,
		httpClient: httpClient,
	}
}

// ---------------------------------------------------------------------------
// Catalog operations
// ---------------------------------------------------------------------------

// ListProducts fetches one zero-based page of the remote catalog
func (c *Client) ListProducts(ctx context.Context, pageIndex, pageSize int, modifiedSince *time.Time) (*integration.ProductPage, error) {
	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(pageSize))
	query.Set("currentPage", strconv.Itoa(pageIndex))
	query.Set("includeInventory", "false")
	if modifiedSince != nil {
		query.Set("lastModifiedFrom", modifiedSince.Format(timeLayout))
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/products", query, nil)
	if err != nil {
		return nil, err
	}

	var resp productListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("kiotviet: failed to decode product list: %w", err)
	}

	page := &integration.ProductPage{
		Items: make([]integration.RemoteProduct, 0, len(resp.Data)),
		Total: resp.Total,
	}
	for _, p := range resp.Data {
		page.Items = append(page.Items, integration.RemoteProduct{
			RemoteID:     p.ID,
			Code:         p.Code,
			Name:         p.Name,
			CategoryID:   p.CategoryID,
			CategoryName: p.CategoryName,
			BasePrice:    p.BasePrice,
			Description:  p.Description,
			Images:       p.Images,
			Active:       p.IsActive,
			ModifiedAt:   parseRemoteTime(p.ModifiedDate),
		})
	}
	return page, nil
}

// GetProductInventory returns the total on-hand quantity across branches
func (c *Client) GetProductInventory(ctx context.Context, remoteID int64) (int, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/products/%d", remoteID), nil, nil)
	if err != nil {
		return 0, err
	}

	var product wireProduct
	if err := json.Unmarshal(body, &product); err != nil {
		return 0, fmt.Errorf("kiotviet: failed to decode product detail: %w", err)
	}

	total := 0
	for _, inv := range product.Inventories {
		total += int(inv.OnHand.IntPart())
	}
	return total, nil
}

// ---------------------------------------------------------------------------
// Order and customer operations
// ---------------------------------------------------------------------------

// CreateOrder mirrors a local order to the POS order endpoint
func (c *Client) CreateOrder(ctx context.Context, req *integration.RemoteOrderRequest) (*integration.RemoteOrderResult, error) {
	payload := orderRequest{
		BranchID:      req.BranchID,
		SaleChannelID: req.SaleChannelID,
		CustomerName:  req.CustomerName,
		Description:   req.Description,
		OrderDetails:  make([]orderDetail, 0, len(req.Lines)),
	}
	if req.CustomerPhone != "" {
		payload.Customer = &customerInline{
			Name:          req.CustomerName,
			ContactNumber: req.CustomerPhone,
		}
	}
	for _, line := range req.Lines {
		payload.OrderDetails = append(payload.OrderDetails, orderDetail{
			ProductID:   line.ProductRemoteID,
			ProductCode: line.ProductCode,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/orders", nil, payload)
	if err != nil {
		return nil, err
	}

	var resp orderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("kiotviet: failed to decode order response: %w", err)
	}
	return &integration.RemoteOrderResult{
		RemoteOrderID: resp.ID,
		Code:          resp.Code,
	}, nil
}

// CreateCustomer registers a customer on the POS
func (c *Client) CreateCustomer(ctx context.Context, req *integration.RemoteCustomerRequest) (*integration.RemoteCustomer, error) {
	payload := customerRequest{
		Name:          req.Name,
		ContactNumber: req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		BranchID:      req.BranchID,
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/customers", nil, payload)
	if err != nil {
		return nil, err
	}

	var resp customerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("kiotviet: failed to decode customer response: %w", err)
	}
	return &integration.RemoteCustomer{
		RemoteID: resp.ID,
		Code:     resp.Code,
		Name:     resp.Name,
		Phone:    resp.ContactNumber,
	}, nil
}

// ---------------------------------------------------------------------------
// Connection and webhook management
// ---------------------------------------------------------------------------

// TestConnection verifies credentials by listing branches
func (c *Client) TestConnection(ctx context.Context) (*integration.ConnectionStatus, error) {
	query := url.Values{}
	query.Set("pageSize", "1")

	_, err := c.doRequest(ctx, http.MethodGet, "/branches", query, nil)
	if err != nil {
		if apiErr, ok := integration.IsRemoteAPIError(err); ok {
			return &integration.ConnectionStatus{
				Success: false,
				Message: fmt.Sprintf("POS API returned status %d", apiErr.StatusCode),
			}, nil
		}
		return nil, err
	}
	return &integration.ConnectionStatus{
		Success: true,
		Message: "connection established",
	}, nil
}

// ListWebhooks returns the webhook subscriptions registered on the POS
func (c *Client) ListWebhooks(ctx context.Context) ([]integration.RemoteWebhook, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/webhooks", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp webhookListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("kiotviet: failed to decode webhook list: %w", err)
	}

	webhooks := make([]integration.RemoteWebhook, 0, len(resp.Data))
	for _, w := range resp.Data {
		webhooks = append(webhooks, integration.RemoteWebhook{
			RemoteID: w.ID,
			Type:     w.Type,
			URL:      w.URL,
			IsActive: w.IsActive,
		})
	}
	return webhooks, nil
}

// RegisterWebhook subscribes a callback URL to a POS event type
func (c *Client) RegisterWebhook(ctx context.Context, req *integration.RemoteWebhookRequest) (*integration.RemoteWebhook, error) {
	payload := webhookRegisterRequest{
		Webhook: webhookRegisterBody{
			Type:   req.Type,
			URL:    req.URL,
			Secret: req.Secret,
		},
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/webhooks", nil, payload)
	if err != nil {
		return nil, err
	}

	var resp wireWebhook
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("kiotviet: failed to decode webhook response: %w", err)
	}
	return &integration.RemoteWebhook{
		RemoteID: resp.ID,
		Type:     resp.Type,
		URL:      resp.URL,
		IsActive: resp.IsActive,
	}, nil
}

// DeleteWebhook removes a webhook subscription by its remote identifier
func (c *Client) DeleteWebhook(ctx context.Context, remoteID int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/webhooks/%d", remoteID), nil, nil)
	return err
}

// ---------------------------------------------------------------------------
// Request plumbing
// ---------------------------------------------------------------------------

// doRequest performs an authenticated HTTP request against the public API
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.config.APIBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("kiotviet: failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("kiotviet: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(retailerHeader, c.config.Retailer)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kiotviet: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("kiotviet: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &integration.RemoteAPIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}
