package sync

import (
	"context"

	"go.uber.org/zap"

	"github.com/webshop/backend/internal/domain/integration"
)

// IntegrationService exposes POS connectivity and webhook subscription
// management to operators.
type IntegrationService struct {
	client integration.POSClient
	logger *zap.Logger
}

// NewIntegrationService creates a new IntegrationService
func NewIntegrationService(client integration.POSClient, logger *zap.Logger) *IntegrationService {
	return &IntegrationService{
		client: client,
		logger: logger,
	}
}

// TestConnection probes the POS API with the configured credentials
func (s *IntegrationService) TestConnection(ctx context.Context) (*integration.ConnectionStatus, error) {
	return s.client.TestConnection(ctx)
}

// ListWebhooks returns the webhook subscriptions registered on the POS
func (s *IntegrationService) ListWebhooks(ctx context.Context) ([]integration.RemoteWebhook, error) {
	return s.client.ListWebhooks(ctx)
}

// RegisterWebhook subscribes a callback URL to a POS event type
func (s *IntegrationService) RegisterWebhook(ctx context.Context, req *integration.RemoteWebhookRequest) (*integration.RemoteWebhook, error) {
	webhook, err := s.client.RegisterWebhook(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("webhook registered on POS",
		zap.Int64("remote_id", webhook.RemoteID),
		zap.String("type", webhook.Type),
		zap.String("url", webhook.URL))
	return webhook, nil
}

// DeleteWebhook removes a webhook subscription by its remote identifier
func (s *IntegrationService) DeleteWebhook(ctx context.Context, remoteID int64) error {
	if err := s.client.DeleteWebhook(ctx, remoteID); err != nil {
		return err
	}
	s.logger.Info("webhook removed from POS", zap.Int64("remote_id", remoteID))
	return nil
}
