package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appaudit "github.com/invoicemonk/backend/internal/application/audit"
	appbilling "github.com/invoicemonk/backend/internal/application/billing"
	appexpense "github.com/invoicemonk/backend/internal/application/expense"
	appidentity "github.com/invoicemonk/backend/internal/application/identity"
	appinvoicing "github.com/invoicemonk/backend/internal/application/invoicing"
	appledger "github.com/invoicemonk/backend/internal/application/ledger"
	appreport "github.com/invoicemonk/backend/internal/application/report"
	"github.com/invoicemonk/backend/internal/infrastructure/auth"
	"github.com/invoicemonk/backend/internal/infrastructure/cache"
	"github.com/invoicemonk/backend/internal/infrastructure/config"
	"github.com/invoicemonk/backend/internal/infrastructure/docgen"
	"github.com/invoicemonk/backend/internal/infrastructure/email"
	"github.com/invoicemonk/backend/internal/infrastructure/event"
	"github.com/invoicemonk/backend/internal/infrastructure/logger"
	"github.com/invoicemonk/backend/internal/infrastructure/persistence"
	"github.com/invoicemonk/backend/internal/interfaces/http/handler"
	"github.com/invoicemonk/backend/internal/interfaces/http/middleware"
	"github.com/invoicemonk/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Invoicemonk server",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Redis backs the token blacklist and the idempotency store. When
	// no Redis host is configured both fall back to in-process stores.
	var (
		blacklist        auth.TokenBlacklist
		idempotencyStore cache.IdempotencyStore
	)
	if cfg.Redis.Host != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cancel()
		defer redisClient.Close()

		blacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		idempotencyStore = cache.NewRedisIdempotencyStore(redisClient, "idem")
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()
		idempotencyStore = store
		log.Warn("Redis not configured, using in-memory token blacklist and idempotency store")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Event bus with the activity log subscriber
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewActivityLogHandler(log))

	// Outbound integrations
	mailer := email.NewMailer(cfg.Email, log)
	var renderer appinvoicing.DocumentRenderer
	if cfg.PDF.Enabled {
		chromeRenderer := docgen.NewChromedpRenderer(cfg.PDF, log)
		defer chromeRenderer.Close()
		renderer = chromeRenderer
	} else {
		renderer = docgen.NewRenderer(cfg.PDF, log)
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	businessRepo := persistence.NewGormBusinessRepository(db.DB)
	membershipRepo := persistence.NewGormMembershipRepository(db.DB)
	accountRepo := persistence.NewGormCurrencyAccountRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	usageRepo := persistence.NewGormUsageRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	creditNoteRepo := persistence.NewGormCreditNoteRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	auditEntryRepo := persistence.NewGormAuditEntryRepository(db.DB)
	manifestRepo := persistence.NewGormExportManifestRepository(db.DB)

	// Application services
	auditService := appaudit.NewService(auditEntryRepo, manifestRepo, log)
	entitlementService := appbilling.NewEntitlementService(subscriptionRepo, usageRepo, log)
	subscriptionService := appbilling.NewSubscriptionService(subscriptionRepo, usageRepo, auditService, log)
	apiTokenService := appbilling.NewAPITokenService(entitlementService, jwtService, auditService, log)
	authService := appidentity.NewAuthService(userRepo, jwtService, blacklist, log)
	businessService := appidentity.NewBusinessService(businessRepo, membershipRepo, accountRepo, subscriptionRepo, eventBus, auditService, log)
	membershipService := appidentity.NewMembershipService(membershipRepo, userRepo, entitlementService, auditService, log)
	accountService := appledger.NewCurrencyAccountService(accountRepo, entitlementService, auditService, log)
	invoiceService := appinvoicing.NewInvoiceService(
		invoiceRepo, creditNoteRepo, paymentRepo, receiptRepo,
		accountRepo, businessRepo, entitlementService, auditService,
		mailer, renderer, eventBus, cfg.App.BaseURL, log,
	)
	expenseService := appexpense.NewService(expenseRepo, accountRepo, auditService, log)
	reportService := appreport.NewReportService(invoiceRepo, expenseRepo, accountRepo, log)
	exportService := appreport.NewExportService(reportService, entitlementService, auditService, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
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

	engine.GET("/health", healthHandler(db, log))

	var authRateLimit gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRateLimit = middleware.RateLimit(authLimiter)
	}

	router.Setup(engine, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Business:     handler.NewBusinessHandler(businessService, membershipService),
		Account:      handler.NewAccountHandler(accountService),
		Invoice:      handler.NewInvoiceHandler(invoiceService),
		Public:       handler.NewPublicHandler(invoiceService),
		Expense:      handler.NewExpenseHandler(expenseService),
		Report:       handler.NewReportHandler(reportService, exportService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService, apiTokenService),
		Audit:        handler.NewAuditHandler(auditService),
	}, router.Deps{
		JWTService:        jwtService,
		TokenBlacklist:    blacklist,
		MembershipService: membershipService,
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    24 * time.Hour,
		AuthRateLimit:     authRateLimit,
	})

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
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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

// healthHandler reports process and database liveness
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
