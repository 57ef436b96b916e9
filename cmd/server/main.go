package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	commissionapp "github.com/vendorhub/backend/internal/application/commission"
	kycapp "github.com/vendorhub/backend/internal/application/kyc"
	notificationapp "github.com/vendorhub/backend/internal/application/notification"
	onboardingapp "github.com/vendorhub/backend/internal/application/onboarding"
	payoutapp "github.com/vendorhub/backend/internal/application/payout"
	vendorapp "github.com/vendorhub/backend/internal/application/vendor"
	"github.com/vendorhub/backend/internal/domain/commission"
	"github.com/vendorhub/backend/internal/domain/kyc"
	"github.com/vendorhub/backend/internal/domain/vendor"
	"github.com/vendorhub/backend/internal/infrastructure/cache"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"github.com/vendorhub/backend/internal/infrastructure/event"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/infrastructure/notification"
	"github.com/vendorhub/backend/internal/infrastructure/persistence"
	"github.com/vendorhub/backend/internal/infrastructure/settlement"
	"github.com/vendorhub/backend/internal/infrastructure/storage"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"github.com/vendorhub/backend/internal/interfaces/http/handler"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
	"github.com/vendorhub/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting VendorHub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	tracer, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Environment:       cfg.App.Env,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meters, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  meters.Meter(telemetry.TracerName),
		Logger: log,
	})
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)),
		persistence.WithPlugins(telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBName:          cfg.Database.DBName,
		}, log)),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	workflowRepo := persistence.NewGormWorkflowRepository(db.DB)
	approvalRepo := persistence.NewGormApprovalRepository(db.DB)
	documentRepo := persistence.NewGormKYCDocumentRepository(db.DB)
	commissionRepo := persistence.NewGormCommissionRepository(db.DB)
	rateRepo := persistence.NewGormCommissionRateRepository(db.DB)
	payoutRepo := persistence.NewGormPayoutRepository(db.DB)
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db.DB)

	// Events: vendor notifications are delivered off the request path and
	// de-duplicated per event id
	eventBus := event.NewInMemoryEventBus(log.Named("events"),
		event.WithAsyncDelivery(),
		event.WithHandlerTimeout(10*time.Second),
	)
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() { _ = idempotencyStore.Close() }()

	notifier := notificationapp.NewVendorNotificationHandler(vendorRepo, notification.NewLoggingNotifier(log), log)
	eventBus.Subscribe(event.NewIdempotentHandler(notifier, idempotencyStore, log,
		event.WithIdempotencyConfig(event.IdempotencyConfig{
			Enabled: cfg.Event.IdempotencyEnabled,
			TTL:     cfg.Event.IdempotencyTTL,
		}),
	))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Onboarding
	approver := onboardingapp.NewApprovalCoordinator(onboardingapp.ApprovalCoordinatorConfig{
		Vendors:        vendorRepo,
		Approvals:      approvalRepo,
		EventPublisher: eventBus,
		StartingTier:   vendor.Tier(cfg.Policy.StartingTier),
		StartingScore:  cfg.Policy.StartingPerformanceScore,
		Logger:         log,
	})
	tracker := onboardingapp.NewWorkflowTracker(workflowRepo, vendorRepo, approver, log)
	vendorService := vendorapp.NewVendorService(vendorapp.VendorServiceConfig{
		Vendors:        vendorRepo,
		Registrations:  vendorRepo,
		Workflows:      workflowRepo,
		EventPublisher: eventBus,
		Logger:         log,
	})

	// KYC
	var objectStorage kycapp.ObjectStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiry),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if cfg.App.Env != "production" {
			bucketCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := s3Storage.EnsureBucket(bucketCtx); err != nil {
				log.Warn("could not ensure storage bucket", zap.String("bucket", s3Storage.Bucket()), zap.Error(err))
			}
			cancel()
		}
		objectStorage = s3Storage
	} else {
		log.Warn("storage bucket not configured, KYC uploads use the stub store")
		objectStorage = storage.NewStubObjectStorage("")
	}
	documentService := kycapp.NewDocumentService(kycapp.DocumentServiceConfig{
		Documents:         documentRepo,
		Vendors:           vendorRepo,
		Tracker:           tracker,
		Storage:           objectStorage,
		Validator:         kyc.NewValidator(cfg.Policy.AutoVerifyThreshold),
		UploadURLExpiry:   cfg.Storage.PresignExpiry,
		DownloadURLExpiry: cfg.Storage.PresignExpiry,
		Logger:            log,
		BusinessMetrics:   businessMetrics,
	})

	// Money
	calculator := commission.NewCalculator(
		decimal.NewFromFloat(cfg.Policy.DefaultCommissionRate),
		decimal.NewFromFloat(cfg.Policy.PlatformFeeRate),
	)
	withholdingTaxRate := decimal.NewFromFloat(cfg.Policy.WithholdingTaxRate)
	commissionService := commissionapp.NewCommissionService(commissionapp.CommissionServiceConfig{
		Commissions: commissionRepo,
		Rates:       rateRepo,
		Vendors:     vendorRepo,
		Payouts:     payoutRepo,
		Calculator:  &calculator,
		Logger:      log,
	})
	payoutService := payoutapp.NewPayoutService(payoutapp.PayoutServiceConfig{
		Payouts:            payoutRepo,
		Adjustments:        adjustmentRepo,
		Commissions:        commissionRepo,
		Vendors:            vendorRepo,
		EventPublisher:     eventBus,
		WithholdingTaxRate: &withholdingTaxRate,
		Logger:             log,
	})
	rails, err := settlement.NewRouter(&cfg.Settlement, settlement.WithLogger(log.Named("settlement")))
	if err != nil {
		log.Fatal("Failed to initialize settlement rails", zap.Error(err))
	}
	processor := payoutapp.NewProcessor(payoutapp.ProcessorConfig{
		Payouts:         payoutRepo,
		Strategies:      rails,
		EventPublisher:  eventBus,
		Logger:          log,
		BusinessMetrics: businessMetrics,
	})

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

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

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Actor(),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if tracer.IsEnabled() {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName)...)
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, db)
	engine.GET("/health", systemHandler.Health)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.APIGroups(router.APIHandlers{
			Vendor:     handler.NewVendorHandler(vendorService),
			Workflow:   handler.NewWorkflowHandler(tracker),
			KYC:        handler.NewKYCHandler(documentService),
			Commission: handler.NewCommissionHandler(commissionService),
			Payout:     handler.NewPayoutHandler(payoutService, processor),
			System:     systemHandler,
		})...).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	// In-flight settlements have finished with their requests; wait for the
	// notifications they published
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Event bus did not drain", zap.Error(err))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer shutdown failed", zap.Error(err))
	}
	if err := meters.Shutdown(shutdownCtx); err != nil {
		log.Warn("Meter shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
