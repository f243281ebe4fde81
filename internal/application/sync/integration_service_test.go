package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/webshop/backend/internal/domain/integration"
)

func TestIntegrationServiceTestConnection(t *testing.T) {
	client := new(MockPOSClient)
	client.On("TestConnection", mock.Anything).
		Return(&integration.ConnectionStatus{Success: true, Message: "connection established"}, nil)

	service := NewIntegrationService(client, zap.NewNop())
	status, err := service.TestConnection(context.Background())

	require.NoError(t, err)
	assert.True(t, status.Success)
}

func TestIntegrationServiceWebhooks(t *testing.T) {
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		client := new(MockPOSClient)
		client.On("ListWebhooks", mock.Anything).Return([]integration.RemoteWebhook{
			{RemoteID: 7, Type: "order.update", URL: "https://shop.example.com/webhook/order-status", IsActive: true},
		}, nil)

		service := NewIntegrationService(client, zap.NewNop())
		webhooks, err := service.ListWebhooks(ctx)

		require.NoError(t, err)
		require.Len(t, webhooks, 1)
		assert.Equal(t, int64(7), webhooks[0].RemoteID)
	})

	t.Run("register", func(t *testing.T) {
		client := new(MockPOSClient)
		req := &integration.RemoteWebhookRequest{Type: "order.update", URL: "https://shop.example.com/webhook/order-status"}
		client.On("RegisterWebhook", mock.Anything, req).
			Return(&integration.RemoteWebhook{RemoteID: 7, Type: req.Type, URL: req.URL, IsActive: true}, nil)

		service := NewIntegrationService(client, zap.NewNop())
		webhook, err := service.RegisterWebhook(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, int64(7), webhook.RemoteID)
	})

	t.Run("register failure surfaces", func(t *testing.T) {
		client := new(MockPOSClient)
		client.On("RegisterWebhook", mock.Anything, mock.Anything).
			Return(nil, &integration.RemoteAPIError{StatusCode: 422, Body: "duplicate"})

		service := NewIntegrationService(client, zap.NewNop())
		webhook, err := service.RegisterWebhook(ctx, &integration.RemoteWebhookRequest{Type: "order.update", URL: "https://x"})

		assert.Nil(t, webhook)
		_, ok := integration.IsRemoteAPIError(err)
		assert.True(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		client := new(MockPOSClient)
		client.On("DeleteWebhook", mock.Anything, int64(7)).Return(nil)

		service := NewIntegrationService(client, zap.NewNop())
		assert.NoError(t, service.DeleteWebhook(ctx, 7))
		client.AssertExpectations(t)
	})
}
