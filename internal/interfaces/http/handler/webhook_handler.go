package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	appsync "github.com/webshop/backend/internal/application/sync"
	"github.com/webshop/backend/internal/domain/integration"
)

// Maximum webhook payload size (256KB - POS notifications carry small batches)
const maxWebhookPayloadSize = 262144

// WebhookHandler receives order status notifications pushed by the POS.
// These endpoints are called by the POS and do not require authentication.
type WebhookHandler struct {
	BaseHandler
	webhookService *appsync.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookService *appsync.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// WebhookResponse is the acknowledgement returned to the POS
type WebhookResponse struct {
	Received  bool   `json:"received"`
	Processed int    `json:"processed,omitempty"`
	Skipped   int    `json:"skipped,omitempty"`
	Message   string `json:"message,omitempty"`
}

// HandleOrderStatus processes an order status webhook. Signature
// verification runs against the raw body before any parsing; business
// level skips are still acknowledged with 200 so the POS does not retry.
func (h *WebhookHandler) HandleOrderStatus(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, WebhookResponse{
			Received: false,
			Message:  "Failed to read request body",
		})
		return
	}

	if len(payload) > maxWebhookPayloadSize {
		c.JSON(http.StatusRequestEntityTooLarge, WebhookResponse{
			Received: false,
			Message:  "Payload too large",
		})
		return
	}

	signature := c.GetHeader(integration.SignatureHeader)

	result, err := h.webhookService.Handle(c.Request.Context(), payload, signature)
	if err != nil {
		if errors.Is(err, integration.ErrInvalidSignature) {
			c.JSON(http.StatusUnauthorized, WebhookResponse{
				Received: false,
				Message:  "Webhook signature verification failed",
			})
			return
		}
		if errors.Is(err, integration.ErrMalformedPayload) {
			c.JSON(http.StatusBadRequest, WebhookResponse{
				Received: false,
				Message:  "Malformed webhook payload",
			})
			return
		}
		// Processing errors are acknowledged so the POS does not retry
		// deliveries that will fail again for the same reason.
		c.JSON(http.StatusOK, WebhookResponse{
			Received: true,
			Message:  "Webhook received but processing encountered an issue",
		})
		return
	}

	c.JSON(http.StatusOK, WebhookResponse{
		Received:  true,
		Processed: result.Processed,
		Skipped:   result.Skipped,
	})
}
