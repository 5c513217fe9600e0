package router

import (
	"github.com/erp/fulfillment-router/internal/infrastructure/auth"
	"github.com/erp/fulfillment-router/internal/interfaces/http/handler"
	"github.com/erp/fulfillment-router/internal/interfaces/http/middleware"
)

// Handlers bundles the endpoint handlers of the service
type Handlers struct {
	Webhooks *handler.ShopifyWebhookHandler
	Proxy    *handler.ProxyHandler
	Admin    *handler.AdminHandler
	System   *handler.SystemHandler
}

// RouteConfig holds the per-surface middleware settings
type RouteConfig struct {
	// WebhookMaxBodySize caps Shopify webhook bodies
	WebhookMaxBodySize int64
	// Tokens validates admin API bearer tokens
	Tokens middleware.TokenValidator
	// ProxyLimiter rate limits the app proxy; nil disables limiting
	ProxyLimiter *middleware.RateLimiter
}

// RegisterFulfillmentRoutes mounts every surface of the service:
//
//	GET  /health
//	POST /webhooks/orders/create
//	POST /webhooks/fulfillment_orders/moved
//	GET  /proxy, POST /proxy
//	GET  /api/v1/system/info, /api/v1/system/ping
//	POST /api/v1/admin/graphql                  (graphql:execute)
//	POST /api/v1/admin/orders/reconcile         (orders:reconcile)
//	GET  /api/v1/admin/reconciliation-runs[/:id] (runs:read, journal only)
func RegisterFulfillmentRoutes(r *Router, h Handlers, cfg RouteConfig) {
	health := NewDomainGroup("health", "/health")
	health.GET("", h.System.Health)

	webhooks := NewDomainGroup("webhooks", "/webhooks").
		Use(middleware.BodyLimit(cfg.WebhookMaxBodySize))
	webhooks.POST("/orders/create", h.Webhooks.HandleOrderCreated)
	webhooks.POST("/fulfillment_orders/moved", h.Webhooks.HandleFulfillmentOrdersMoved)

	proxy := NewDomainGroup("proxy", "/proxy").
		Use(middleware.ProxyRateLimit(cfg.ProxyLimiter))
	proxy.GET("", h.Proxy.Ping)
	proxy.POST("", h.Proxy.HandleAction)

	r.RegisterRoot(health).
		RegisterRoot(webhooks).
		RegisterRoot(proxy)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)
	system.GET("/ping", h.System.Ping)

	admin := NewDomainGroup("admin", "/admin").
		Use(middleware.JWTAuthMiddleware(cfg.Tokens))
	admin.POST("/graphql", middleware.RequireScope(auth.ScopeGraphQLExecute), h.Admin.ExecuteGraphQL)
	admin.POST("/orders/reconcile", middleware.RequireScope(auth.ScopeOrdersReconcile), h.Admin.ReconcileOrder)
	if h.Admin.HasRunJournal() {
		runs := admin.Group("runs", "/reconciliation-runs").
			Use(middleware.RequireScope(auth.ScopeRunsRead))
		runs.GET("", h.Admin.ListRuns)
		runs.GET("/:id", h.Admin.GetRun)
	}

	r.Register(system).
		Register(admin)
}
