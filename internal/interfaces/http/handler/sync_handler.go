package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appsync "github.com/webshop/backend/internal/application/sync"
	"github.com/webshop/backend/internal/interfaces/http/dto"
)

// SyncHandler exposes catalog synchronization endpoints
type SyncHandler struct {
	BaseHandler
	productSync        *appsync.ProductSyncService
	integrationService *appsync.IntegrationService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(productSync *appsync.ProductSyncService, integrationService *appsync.IntegrationService) *SyncHandler {
	return &SyncHandler{
		productSync:        productSync,
		integrationService: integrationService,
	}
}

// SyncProductsRequest holds options for an incremental sync
type SyncProductsRequest struct {
	Since string `json:"since" binding:"omitempty"`
}

// SyncProducts runs a full catalog sync against the POS
func (h *SyncHandler) SyncProducts(c *gin.Context) {
	summary, err := h.productSync.SyncAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// SyncProductsIncremental runs a sync limited to products modified since the
// given timestamp. Without a timestamp it falls back to the last 24 hours.
func (h *SyncHandler) SyncProductsIncremental(c *gin.Context) {
	var req SyncProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, "Invalid request body")
		return
	}

	since := time.Now().Add(-24 * time.Hour)
	if req.Since != "" {
		parsed, err := time.Parse(time.RFC3339, req.Since)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationFormat, "since must be an RFC3339 timestamp")
			return
		}
		since = parsed
	}

	summary, err := h.productSync.SyncIncremental(c.Request.Context(), since)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// TestConnection verifies POS credentials by calling a lightweight endpoint
func (h *SyncHandler) TestConnection(c *gin.Context) {
	status, err := h.integrationService.TestConnection(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}
