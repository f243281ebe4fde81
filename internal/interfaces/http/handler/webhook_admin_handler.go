package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appsync "github.com/webshop/backend/internal/application/sync"
	"github.com/webshop/backend/internal/domain/integration"
	"github.com/webshop/backend/internal/interfaces/http/middleware"
)

// WebhookAdminHandler manages webhook registrations on the POS side
type WebhookAdminHandler struct {
	BaseHandler
	integrationService *appsync.IntegrationService
}

// NewWebhookAdminHandler creates a new WebhookAdminHandler
func NewWebhookAdminHandler(integrationService *appsync.IntegrationService) *WebhookAdminHandler {
	return &WebhookAdminHandler{integrationService: integrationService}
}

// RegisterWebhookRequest holds the subscription details sent to the POS
type RegisterWebhookRequest struct {
	Type   string `json:"type" binding:"required"`
	URL    string `json:"url" binding:"required,url"`
	Secret string `json:"secret"`
}

// ListWebhooks returns the webhooks currently registered on the POS
func (h *WebhookAdminHandler) ListWebhooks(c *gin.Context) {
	webhooks, err := h.integrationService.ListWebhooks(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, webhooks)
}

// RegisterWebhook subscribes our endpoint to POS notifications
func (h *WebhookAdminHandler) RegisterWebhook(c *gin.Context) {
	var req RegisterWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	webhook, err := h.integrationService.RegisterWebhook(c.Request.Context(), &integration.RemoteWebhookRequest{
		Type:   req.Type,
		URL:    req.URL,
		Secret: req.Secret,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, webhook)
}

// DeleteWebhook removes a webhook registration from the POS
func (h *WebhookAdminHandler) DeleteWebhook(c *gin.Context) {
	remoteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid webhook ID")
		return
	}

	if err := h.integrationService.DeleteWebhook(c.Request.Context(), remoteID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
