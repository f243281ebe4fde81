package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appsync "github.com/webshop/backend/internal/application/sync"
	"github.com/webshop/backend/internal/domain/integration"
	"github.com/webshop/backend/internal/domain/shared"
)

func setupSyncTestRouter(gate shared.OperationGate) (*gin.Engine, *MockPOSClient, *MockProductRepository, *MockCategoryRepository) {
	gin.SetMode(gin.TestMode)

	mockClient := new(MockPOSClient)
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)

	productSync := appsync.NewProductSyncService(
		mockClient, mockProducts, mockCategories, gate,
		appsync.ProductSyncConfig{PageSize: 100}, zap.NewNop(),
	)
	integrationService := appsync.NewIntegrationService(mockClient, zap.NewNop())
	h := NewSyncHandler(productSync, integrationService)

	router := gin.New()
	router.POST("/sync/products", h.SyncProducts)
	router.POST("/sync/products/incremental", h.SyncProductsIncremental)
	router.GET("/sync/connection", h.TestConnection)

	return router, mockClient, mockProducts, mockCategories
}

func TestSyncHandler_SyncProducts(t *testing.T) {
	t.Run("returns the sync summary", func(t *testing.T) {
		router, mockClient, mockProducts, _ := setupSyncTestRouter(openGate{})

		remoteID := int64(1001)
		page := &integration.ProductPage{
			Items: []integration.RemoteProduct{{
				RemoteID:  remoteID,
				Code:      "SP1001",
				Name:      "Espresso Beans 1kg",
				BasePrice: decimal.NewFromInt(250000),
				Active:    true,
			}},
			Total: 1,
		}
		mockClient.On("ListProducts", mock.Anything, 0, 100, (*time.Time)(nil)).Return(page, nil).Once()
		mockClient.On("GetProductInventory", mock.Anything, remoteID).Return(7, nil).Once()

		product := mustLinkedProduct(t, remoteID, "Espresso Beans 1kg", 250000)
		mockProducts.On("FindByRemoteID", mock.Anything, remoteID).Return(product, nil).Once()
		mockProducts.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/sync/products", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response["success"].(bool))
		data := response["data"].(map[string]any)
		assert.Equal(t, float64(1), data["processed"])
		assert.Equal(t, float64(1), data["synced"])

		mockClient.AssertExpectations(t)
		mockProducts.AssertExpectations(t)
	})

	t.Run("returns 429 with Retry-After when the gate is closed", func(t *testing.T) {
		router, mockClient, _, _ := setupSyncTestRouter(deniedGate{retryAfter: 50 * time.Second})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/sync/products", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "50", w.Header().Get("Retry-After"))
		mockClient.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns 502 when the first page fails remotely", func(t *testing.T) {
		router, mockClient, _, _ := setupSyncTestRouter(openGate{})

		mockClient.On("ListProducts", mock.Anything, 0, 100, (*time.Time)(nil)).
			Return(nil, &integration.RemoteAPIError{StatusCode: 500, Body: "boom"}).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/sync/products", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestSyncHandler_SyncProductsIncremental(t *testing.T) {
	t.Run("passes the since timestamp through", func(t *testing.T) {
		router, mockClient, _, _ := setupSyncTestRouter(openGate{})

		since := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
		mockClient.On("ListProducts", mock.Anything, 0, 100, mock.MatchedBy(func(ts *time.Time) bool {
			return ts != nil && ts.Equal(since)
		})).Return(&integration.ProductPage{Total: 0}, nil).Once()

		body, _ := json.Marshal(SyncProductsRequest{Since: since.Format(time.RFC3339)})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/sync/products/incremental", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockClient.AssertExpectations(t)
	})

	t.Run("defaults to the last 24 hours without a body", func(t *testing.T) {
		router, mockClient, _, _ := setupSyncTestRouter(openGate{})

		mockClient.On("ListProducts", mock.Anything, 0, 100, mock.MatchedBy(func(ts *time.Time) bool {
			if ts == nil {
				return false
			}
			expected := time.Now().Add(-24 * time.Hour)
			return ts.Sub(expected).Abs() < time.Minute
		})).Return(&integration.ProductPage{Total: 0}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/sync/products/incremental", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockClient.AssertExpectations(t)
	})

	t.Run("rejects a malformed since timestamp", func(t *testing.T) {
		router, _, _, _ := setupSyncTestRouter(openGate{})

		body := []byte(`{"since":"10/01/2025"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/sync/products/incremental", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "RFC3339")
	})
}

func TestSyncHandler_TestConnection(t *testing.T) {
	t.Run("reports a healthy connection", func(t *testing.T) {
		router, mockClient, _, _ := setupSyncTestRouter(openGate{})

		mockClient.On("TestConnection", mock.Anything).
			Return(&integration.ConnectionStatus{Success: true, Message: "connected"}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/sync/connection", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "connected")
	})

	t.Run("maps transport failures to 502", func(t *testing.T) {
		router, mockClient, _, _ := setupSyncTestRouter(openGate{})

		mockClient.On("TestConnection", mock.Anything).
			Return(nil, &integration.RemoteAPIError{StatusCode: 503, Body: "maintenance"}).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/sync/connection", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
