package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsync "github.com/webshop/backend/internal/application/sync"
	"github.com/webshop/backend/internal/infrastructure/auth"
	"github.com/webshop/backend/internal/infrastructure/cache"
	"github.com/webshop/backend/internal/infrastructure/config"
	"github.com/webshop/backend/internal/infrastructure/kiotviet"
	"github.com/webshop/backend/internal/infrastructure/logger"
	"github.com/webshop/backend/internal/infrastructure/persistence"
	"github.com/webshop/backend/internal/infrastructure/scheduler"
	"github.com/webshop/backend/internal/interfaces/http/handler"
	"github.com/webshop/backend/internal/interfaces/http/middleware"
	"github.com/webshop/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Webshop Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Initialize POS client
	posCfg := &kiotviet.Config{
		ClientID:          cfg.POS.ClientID,
		ClientSecret:      cfg.POS.ClientSecret,
		Retailer:          cfg.POS.Retailer,
		TokenURL:          cfg.POS.TokenURL,
		APIBaseURL:        cfg.POS.APIBaseURL,
		WebhookSecret:     cfg.POS.WebhookSecret,
		BranchID:          cfg.POS.BranchID,
		SaleChannelID:     cfg.POS.SaleChannelID,
		CategoryAllowList: cfg.POS.CategoryAllowList,
		TimeoutSeconds:    cfg.POS.TimeoutSeconds,
	}
	if err := posCfg.Validate(); err != nil {
		log.Fatal("Invalid POS configuration", zap.Error(err))
	}
	tokens, err := kiotviet.NewTokenManager(posCfg, nil)
	if err != nil {
		log.Fatal("Failed to initialize POS token manager", zap.Error(err))
	}
	posClient := kiotviet.NewClient(posCfg, tokens, nil)

	// Operation gate guards sync operations with a per-key cooldown.
	// Redis keeps the cooldown across restarts and replicas; the
	// in-memory fallback covers single-node development setups.
	gateFactory := cache.NewOperationGateFactory(cfg.Redis, cfg.Sync.Cooldown,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	gate, err := gateFactory.CreateGate()
	if err != nil {
		log.Fatal("Failed to initialize operation gate", zap.Error(err))
	}

	// Initialize application services
	productSyncService := appsync.NewProductSyncService(
		posClient, productRepo, categoryRepo, gate,
		appsync.ProductSyncConfig{
			PageSize:          cfg.Sync.PageSize,
			CategoryAllowList: cfg.POS.CategoryAllowList,
			PagePause:         cfg.Sync.PagePause,
			ErrorPause:        cfg.Sync.ErrorPause,
		},
		log,
	)
	orderSyncService := appsync.NewOrderSyncService(
		posClient, orderRepo, productRepo,
		appsync.OrderSyncConfig{
			BranchID:      cfg.POS.BranchID,
			SaleChannelID: cfg.POS.SaleChannelID,
		},
		log,
	)
	webhookService := appsync.NewWebhookService(
		orderRepo,
		appsync.WebhookConfig{
			Secret:        cfg.POS.WebhookSecret,
			BranchID:      cfg.POS.BranchID,
			SaleChannelID: cfg.POS.SaleChannelID,
		},
		log,
	)
	integrationService := appsync.NewIntegrationService(posClient, log)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		System:       handler.NewSystemHandler(db),
		Sync:         handler.NewSyncHandler(productSyncService, integrationService),
		Orders:       handler.NewOrderHandler(orderSyncService),
		Webhooks:     handler.NewWebhookHandler(webhookService),
		WebhookAdmin: handler.NewWebhookAdminHandler(integrationService),
	}

	// Setup Gin
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	// JWT guards everything except the health probes and the webhook
	// endpoint, which carries its own HMAC signature instead.
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Register routes
	router.RegisterPublicRoutes(engine, handlers)
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	for _, registrar := range router.BuildAPIRoutes(handlers) {
		r.Register(registrar)
	}
	r.Setup()

	// Start incremental sync scheduler
	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	defer cancelScheduler()

	catalogScheduler := scheduler.NewCatalogSyncScheduler(
		productSyncService,
		scheduler.CatalogSyncSchedulerConfig{
			Enabled:  cfg.Scheduler.Enabled,
			Interval: cfg.Scheduler.Interval,
			Lookback: cfg.Scheduler.Lookback,
		},
		log,
	)
	if err := catalogScheduler.Start(schedulerCtx); err != nil {
		log.Error("Failed to start catalog sync scheduler", zap.Error(err))
	}

	// Start HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := catalogScheduler.Stop(shutdownCtx); err != nil {
		log.Error("Scheduler shutdown error", zap.Error(err))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
