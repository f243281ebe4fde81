package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	appsync "github.com/webshop/backend/internal/application/sync"
	"github.com/webshop/backend/internal/domain/integration"
)

func setupWebhookAdminTestRouter() (*gin.Engine, *MockPOSClient) {
	gin.SetMode(gin.TestMode)

	mockClient := new(MockPOSClient)
	service := appsync.NewIntegrationService(mockClient, zap.NewNop())
	h := NewWebhookAdminHandler(service)

	router := gin.New()
	router.GET("/webhooks", h.ListWebhooks)
	router.POST("/webhooks", h.RegisterWebhook)
	router.DELETE("/webhooks/:id", h.DeleteWebhook)

	return router, mockClient
}

func TestWebhookAdminHandler_ListWebhooks(t *testing.T) {
	router, mockClient := setupWebhookAdminTestRouter()

	mockClient.On("ListWebhooks", mock.Anything).Return([]integration.RemoteWebhook{
		{RemoteID: 7, Type: "order.update", URL: "https://shop.example.com/webhook/order-status", IsActive: true},
	}, nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/webhooks", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "order.update")
	mockClient.AssertExpectations(t)
}

func TestWebhookAdminHandler_RegisterWebhook(t *testing.T) {
	t.Run("registers a subscription on the POS", func(t *testing.T) {
		router, mockClient := setupWebhookAdminTestRouter()

		mockClient.On("RegisterWebhook", mock.Anything, &integration.RemoteWebhookRequest{
			Type:   "order.update",
			URL:    "https://shop.example.com/webhook/order-status",
			Secret: "s3cret",
		}).Return(&integration.RemoteWebhook{
			RemoteID: 7,
			Type:     "order.update",
			URL:      "https://shop.example.com/webhook/order-status",
			IsActive: true,
		}, nil).Once()

		body, _ := json.Marshal(RegisterWebhookRequest{
			Type:   "order.update",
			URL:    "https://shop.example.com/webhook/order-status",
			Secret: "s3cret",
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/webhooks", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockClient.AssertExpectations(t)
	})

	t.Run("rejects a non-URL callback", func(t *testing.T) {
		router, mockClient := setupWebhookAdminTestRouter()

		body, _ := json.Marshal(RegisterWebhookRequest{Type: "order.update", URL: "not a url"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/webhooks", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockClient.AssertNotCalled(t, "RegisterWebhook", mock.Anything, mock.Anything)
	})

	t.Run("surfaces POS registration failures as 502", func(t *testing.T) {
		router, mockClient := setupWebhookAdminTestRouter()

		mockClient.On("RegisterWebhook", mock.Anything, mock.Anything).
			Return(nil, &integration.RemoteAPIError{StatusCode: 400, Body: "duplicate"}).Once()

		body, _ := json.Marshal(RegisterWebhookRequest{
			Type: "order.update",
			URL:  "https://shop.example.com/webhook/order-status",
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/webhooks", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestWebhookAdminHandler_DeleteWebhook(t *testing.T) {
	t.Run("removes a registration", func(t *testing.T) {
		router, mockClient := setupWebhookAdminTestRouter()

		mockClient.On("DeleteWebhook", mock.Anything, int64(7)).Return(nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/webhooks/7", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockClient.AssertExpectations(t)
	})

	t.Run("rejects a non-numeric ID", func(t *testing.T) {
		router, mockClient := setupWebhookAdminTestRouter()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/webhooks/seven", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockClient.AssertNotCalled(t, "DeleteWebhook", mock.Anything, mock.Anything)
	})
}
