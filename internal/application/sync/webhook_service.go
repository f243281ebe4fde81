package sync

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/webshop/backend/internal/domain/integration"
	"github.com/webshop/backend/internal/domain/sales"
	"github.com/webshop/backend/internal/infrastructure/kiotviet"
)

// remoteStatusMap maps POS numeric order status codes to local statuses.
// Unlisted codes are skipped without mutating state.
var remoteStatusMap = map[int]sales.OrderStatus{
	1: sales.OrderStatusConfirmed,
	2: sales.OrderStatusCancelled,
	3: sales.OrderStatusShipping,
	5: sales.OrderStatusCancelled,
}

// WebhookConfig contains configuration for the webhook service
type WebhookConfig struct {
	// Secret verifies the x-hub-signature header; empty disables verification
	Secret string
	// BranchID and SaleChannelID select which records in the shared POS
	// feed belong to this website
	BranchID      int64
	SaleChannelID int64
}

// WebhookService reconciles inbound POS order-status notifications into
// local order records. Business-level problems (wrong branch, unknown
// status, no matching order) are counted as skips, never errors, so the
// POS does not retry indefinitely on a local miss.
type WebhookService struct {
	orderRepo sales.OrderRepository
	config    WebhookConfig
	logger    *zap.Logger
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(orderRepo sales.OrderRepository, config WebhookConfig, logger *zap.Logger) *WebhookService {
	return &WebhookService{
		orderRepo: orderRepo,
		config:    config,
		logger:    logger,
	}
}

// Handle verifies and applies one webhook envelope. It fails only for
// signature or payload problems; everything past that point aggregates
// into counts.
func (s *WebhookService) Handle(ctx context.Context, rawBody []byte, signature string) (*WebhookResult, error) {
	if s.config.Secret == "" {
		s.logger.Warn("webhook secret not configured, skipping signature verification")
	} else if !kiotviet.VerifySignature(s.config.Secret, rawBody, signature) {
		return nil, integration.ErrInvalidSignature
	}

	var envelope integration.OrderStatusEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		return nil, integration.ErrMalformedPayload
	}

	result := &WebhookResult{}
	for _, notification := range envelope.Notifications {
		for _, entry := range notification.Data {
			s.applyEntry(ctx, &entry, result)
		}
	}

	s.logger.Info("webhook envelope handled",
		zap.String("envelope_id", envelope.ID),
		zap.Int("processed", result.Processed),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *WebhookService) applyEntry(ctx context.Context, entry *integration.OrderStatusEntry, result *WebhookResult) {
	if entry.BranchID != s.config.BranchID || entry.SaleChannelID != s.config.SaleChannelID {
		result.Skipped++
		return
	}

	status, ok := remoteStatusMap[entry.Status]
	if !ok {
		s.logger.Warn("unknown remote order status, skipping",
			zap.Int64("remote_order_id", entry.RemoteOrderID),
			zap.Int("status", entry.Status))
		result.Skipped++
		return
	}

	affected, err := s.orderRepo.UpdateStatusByRemoteOrderID(ctx, entry.RemoteOrderID, status)
	if err != nil {
		s.logger.Error("order status update failed",
			zap.Int64("remote_order_id", entry.RemoteOrderID),
			zap.Error(err))
		result.Skipped++
		return
	}
	if affected == 0 {
		s.logger.Warn("no local order for remote order, skipping",
			zap.Int64("remote_order_id", entry.RemoteOrderID))
		result.Skipped++
		return
	}

	result.Processed++
}
