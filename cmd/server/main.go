package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	crmapp "github.com/bizkit/backend/internal/application/crm"
	financeapp "github.com/bizkit/backend/internal/application/finance"
	identityapp "github.com/bizkit/backend/internal/application/identity"
	projectapp "github.com/bizkit/backend/internal/application/project"
	reportapp "github.com/bizkit/backend/internal/application/report"
	"github.com/bizkit/backend/internal/infrastructure/auth"
	"github.com/bizkit/backend/internal/infrastructure/cache"
	"github.com/bizkit/backend/internal/infrastructure/config"
	"github.com/bizkit/backend/internal/infrastructure/logger"
	"github.com/bizkit/backend/internal/infrastructure/persistence"
	"github.com/bizkit/backend/internal/infrastructure/scheduler"
	"github.com/bizkit/backend/internal/infrastructure/storage"
	"github.com/bizkit/backend/internal/interfaces/http/handler"
	"github.com/bizkit/backend/internal/interfaces/http/middleware"
	"github.com/bizkit/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting BizKit Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
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
	clientRepo := persistence.NewGormClientRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)
	estimateRepo := persistence.NewGormEstimateRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	recurringInvoiceRepo := persistence.NewGormRecurringInvoiceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txManager := persistence.NewGormTxManager(db.DB)

	// Receipt storage: S3 when a bucket is configured, stub otherwise
	var receiptStore financeapp.ReceiptStore
	if cfg.Storage.Bucket != "" {
		s3Store, err := storage.NewS3ReceiptStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize receipt storage", zap.Error(err))
		}
		receiptStore = s3Store
		log.Info("Receipt storage initialized",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("region", cfg.Storage.Region),
		)
	} else {
		receiptStore = storage.NewStubReceiptStorage()
		log.Warn("No storage bucket configured, using stub receipt storage")
	}

	// Dashboard stats cache: Redis when enabled, in-memory otherwise
	cacheFactory := cache.NewStatsCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	var statsCache reportapp.StatsCache
	if cfg.Cache.Enabled {
		statsCache, err = cacheFactory.CreateCache()
		if err != nil {
			log.Fatal("Failed to initialize stats cache", zap.Error(err))
		}
	} else {
		statsCache = cacheFactory.CreateInMemoryCache()
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, identityapp.DefaultAuthServiceConfig(), log)
	conversionService := crmapp.NewConversionService(estimateRepo, leadRepo, projectRepo, clientRepo, invoiceRepo, txManager, log)
	invoiceService := financeapp.NewInvoiceService(invoiceRepo, clientRepo, log)
	recurringInvoiceService := financeapp.NewRecurringInvoiceService(recurringInvoiceRepo, invoiceRepo, txManager, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, receiptStore, log)
	profitabilityService := projectapp.NewProfitabilityService(projectRepo, invoiceRepo, expenseRepo, log)
	budgetService := projectapp.NewBudgetService(projectRepo, log)
	dashboardService := reportapp.NewDashboardService(dashboardRepo, statsCache, cfg.Cache.StatsTTL, log)

	// Start recurring invoice scheduler (no-op when disabled)
	invoiceScheduler := scheduler.NewRecurringInvoiceScheduler(recurringInvoiceService, log, cfg.Scheduler)
	if err := invoiceScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start recurring invoice scheduler", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := invoiceScheduler.Stop(stopCtx); err != nil {
			log.Error("Error stopping recurring invoice scheduler", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	estimateHandler := handler.NewEstimateHandler(conversionService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	recurringInvoiceHandler := handler.NewRecurringInvoiceHandler(recurringInvoiceService)
	projectHandler := handler.NewProjectHandler(profitabilityService, budgetService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes: JWT authentication and company context apply to the
	// whole versioned group except the public auth endpoints
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log

	companyConfig := middleware.DefaultCompanyConfig(middleware.NewRepositoryCompanyValidator(companyRepo))
	companyConfig.Logger = log

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(
		middleware.JWTAuthMiddlewareWithConfig(jwtConfig),
		middleware.CompanyMiddlewareWithConfig(companyConfig),
	)
	r.Register(authHandler).
		Register(estimateHandler).
		Register(invoiceHandler).
		Register(recurringInvoiceHandler).
		Register(projectHandler).
		Register(expenseHandler).
		Register(dashboardHandler).
		Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
