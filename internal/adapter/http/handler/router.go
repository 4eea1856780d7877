package handler

import (
	"filesolved/internal/adapter/http/middleware"
	redisStore "filesolved/internal/adapter/storage/redis"
	"filesolved/internal/catalog"
	"filesolved/internal/core/ports"
	"filesolved/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Catalog        *catalog.Catalog
	OrderSvc       ports.OrderService
	PaymentSvc     ports.PaymentService
	FulfillmentSvc ports.FulfillmentService
	Notifier       ports.EventNotifier
	AuthSvc        ports.AuthService
	TokenSvc       ports.TokenService
	OrderRepo      ports.OrderRepository
	FileRepo       ports.FileRepository
	FileStore      ports.FileStore
	MaxUploadMB    int64                     // 0 = default 50 MB
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	maxUpload := deps.MaxUploadMB
	if maxUpload <= 0 {
		maxUpload = 50
	}

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxUpload << 20))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(telemetry.Handler()))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	serviceHandler := NewServiceHandler(deps.Catalog)
	services := v1.Group("/services")
	{
		services.GET("", serviceHandler.List)
		services.GET("/types", serviceHandler.Types)
		services.GET("/:id", serviceHandler.Get)
	}

	uploadHandler := NewUploadHandler(deps.FileStore, deps.FileRepo, deps.Notifier, maxUpload)
	v1.POST("/uploads", rl("uploads"), uploadHandler.Upload)

	orderHandler := NewOrderHandler(deps.OrderSvc)
	orders := v1.Group("/orders")
	{
		orders.POST("", rl("orders"), orderHandler.Create)
		orders.GET("/:id", orderHandler.Get)
		orders.GET("/:id/download", orderHandler.Download)
	}

	paymentHandler := NewPaymentHandler(deps.PaymentSvc)
	v1.POST("/payments/:orderId/capture", rl("payments"), paymentHandler.Capture)

	processHandler := NewProcessHandler(deps.FulfillmentSvc)
	process := v1.Group("/process")
	{
		process.POST("/batch", rl("process"), processHandler.Batch)
		process.POST("/:orderId", rl("process"), processHandler.Trigger)
		process.GET("/:orderId/status", processHandler.Status)
	}

	authHandler := NewAuthHandler(deps.AuthSvc)
	v1.POST("/auth/login", rl("auth_login"), authHandler.Login)

	// --- Admin routes (JWT-authenticated) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	adminHandler := NewAdminHandler(deps.PaymentSvc, deps.FulfillmentSvc, deps.OrderRepo)
	webhookHandler := NewWebhookHandler(deps.Notifier)

	v1.GET("/process/jobs", jwtAuth, rl("admin"), processHandler.ListJobs)

	admin := v1.Group("/admin", jwtAuth)
	{
		admin.GET("/orders", rl("admin"), adminHandler.ListOrders)
		admin.POST("/orders/:id/reprocess", rl("admin"), adminHandler.Reprocess)
		admin.POST("/orders/:id/refund", rl("admin"), adminHandler.Refund)
	}

	webhooks := v1.Group("/webhooks", jwtAuth)
	{
		webhooks.POST("", rl("admin"), webhookHandler.Register)
		webhooks.GET("", rl("admin"), webhookHandler.List)
		webhooks.GET("/events", rl("admin"), webhookHandler.Events)
		webhooks.PUT("/:id", rl("admin"), webhookHandler.Update)
		webhooks.DELETE("/:id", rl("admin"), webhookHandler.Delete)
		webhooks.POST("/:id/test", rl("admin"), webhookHandler.Test)
	}

	return r
}
