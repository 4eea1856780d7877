package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filesolved/config"
	httpHandler "filesolved/internal/adapter/http/handler"
	localStorage "filesolved/internal/adapter/storage/local"
	pgStorage "filesolved/internal/adapter/storage/postgres"
	redisStorage "filesolved/internal/adapter/storage/redis"
	"filesolved/internal/catalog"
	"filesolved/internal/core/ports"
	"filesolved/internal/processor"
	"filesolved/internal/service"
	"filesolved/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("api", cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting FileSolved fulfillment pipeline")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	orderRepo := pgStorage.NewOrderRepo(pool)
	jobRepo := pgStorage.NewJobRepo(pool)
	fileRepo := pgStorage.NewFileRepo(pool)
	paymentRepo := pgStorage.NewPaymentRepo(pool)
	webhookRepo := pgStorage.NewWebhookRepo(pool)
	auditRepo := pgStorage.NewAuditRepository(pool)

	// Initialize Redis stores
	orderLock := redisStorage.NewOrderLock(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize file storage
	fileStore, err := localStorage.NewFileStore(cfg.Storage.UploadDir, cfg.Storage.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize file storage")
	}

	// Service catalog and processor registry
	cat := catalog.MustDefault()
	registry := processor.Builtin()

	// Initialize core services
	sigSvc := service.NewHMACSignatureService()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Initialize business services
	notifierSvc := service.NewNotifierService(webhookRepo, sigSvc, &http.Client{Timeout: 10 * time.Second}, log)
	authSvc := service.NewAuthService(cfg.Admin.Username, cfg.Admin.PasswordHash, hashSvc, tokenSvc)
	auditSvc := service.NewAuditService(auditRepo, log)
	orderSvc := service.NewOrderService(orderRepo, fileRepo, fileStore, cat, notifierSvc, log)
	fulfillmentSvc := service.NewFulfillmentService(orderRepo, jobRepo, fileRepo, fileStore, cat, registry, orderLock, notifierSvc, log)
	paymentSvc := service.NewPaymentService(orderRepo, paymentRepo, fulfillmentSvc, notifierSvc, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Catalog:        cat,
		OrderSvc:       orderSvc,
		PaymentSvc:     paymentSvc,
		FulfillmentSvc: fulfillmentSvc,
		Notifier:       notifierSvc,
		AuthSvc:        authSvc,
		TokenSvc:       tokenSvc,
		OrderRepo:      orderRepo,
		FileRepo:       fileRepo,
		FileStore:      fileStore,
		MaxUploadMB:    cfg.Storage.MaxUploadSizeMB,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		AuditSvc:       auditSvc,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}

	log.Info().Msg("Server stopped")
}
