package router

import (
	"github.com/gin-gonic/gin"

	"github.com/webshop/backend/internal/interfaces/http/handler"
)

// Handlers bundles everything the route tree needs
type Handlers struct {
	System       *handler.SystemHandler
	Sync         *handler.SyncHandler
	Orders       *handler.OrderHandler
	Webhooks     *handler.WebhookHandler
	WebhookAdmin *handler.WebhookAdminHandler
}

// RegisterPublicRoutes wires routes that bypass authentication: health
// probes and the POS webhook receiver (which authenticates via HMAC).
func RegisterPublicRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", h.System.Health)
	engine.GET("/healthz", h.System.Health)
	engine.GET("/ready", h.System.Health)

	webhook := engine.Group("/webhook")
	webhook.POST("/order-status", h.Webhooks.HandleOrderStatus)
}

// BuildAPIRoutes assembles the versioned API route tree
func BuildAPIRoutes(h Handlers) []RouteRegistrar {
	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)
	system.GET("/ping", h.System.Ping)

	sync := NewDomainGroup("sync", "/sync")
	sync.POST("/products", h.Sync.SyncProducts)
	sync.POST("/products/incremental", h.Sync.SyncProductsIncremental)
	sync.GET("/connection", h.Sync.TestConnection)
	sync.GET("/webhooks", h.WebhookAdmin.ListWebhooks)
	sync.POST("/webhooks", h.WebhookAdmin.RegisterWebhook)
	sync.DELETE("/webhooks/:id", h.WebhookAdmin.DeleteWebhook)

	orders := NewDomainGroup("orders", "/orders")
	orders.POST("", h.Orders.CreateOrder)
	orders.GET("", h.Orders.ListOrders)
	orders.GET("/:id", h.Orders.GetOrder)

	return []RouteRegistrar{system, sync, orders}
}
