package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	passbookapp "github.com/erp/passbook/internal/application/passbook"
	"github.com/erp/passbook/internal/domain/ledger"
	"github.com/erp/passbook/internal/domain/shared"
	"github.com/erp/passbook/internal/infrastructure/cache"
	"github.com/erp/passbook/internal/infrastructure/config"
	"github.com/erp/passbook/internal/infrastructure/event"
	"github.com/erp/passbook/internal/infrastructure/logger"
	"github.com/erp/passbook/internal/infrastructure/metrics"
	"github.com/erp/passbook/internal/infrastructure/persistence"
	"github.com/erp/passbook/internal/interfaces/http/handler"
	"github.com/erp/passbook/internal/interfaces/http/middleware"
	"github.com/erp/passbook/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
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
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting passbook service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.GormConfig{
		Level:         cfg.Log.SQLLevel,
		SlowThreshold: cfg.Log.SQLSlowThreshold,
	})
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	accountRepo := persistence.NewGormAccountRepository(db.DB)
	challanRepo := persistence.NewGormChallanRepository(db.DB)
	voucherRepo := persistence.NewGormVoucherRepository(db.DB)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(logger.Named(log, "idempotency")),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).CreateStore(startCtx)
	cancelStart()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		_ = idempotencyStore.Close()
	}()

	publisher := event.NewPublisher(cfg.Event, logger.Named(log, "events"))
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Error closing event publisher", zap.Error(err))
		}
	}()

	registry := metrics.NewRegistry()

	passbookService := passbookapp.NewPassbookService(accountRepo, challanRepo, voucherRepo,
		passbookapp.Options{
			DefaultPageSize: cfg.Passbook.DefaultPageSize,
			MaxPageSize:     cfg.Passbook.MaxPageSize,
			FetchTimeout:    cfg.Passbook.FetchTimeout,
			TieBreak:        ledger.ParseTieBreak(cfg.Passbook.VoucherTieBreak),
		},
		registry,
		logger.Named(log, "passbook"),
	)
	entryService := passbookapp.NewEntryService(accountRepo, challanRepo, voucherRepo, passbookService,
		idempotencyStore,
		shared.IdempotencyConfig{TTL: cfg.Passbook.IdempotencyTTL, Enabled: true},
		publisher,
		logger.Named(log, "entries"),
	)
	accountService := passbookapp.NewAccountService(accountRepo, logger.Named(log, "accounts"))

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// RequestID runs first so every later log line carries it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.HTTP.MetricsEnabled {
		engine.Use(registry.GinMiddleware())
	}
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	handlers := router.Handlers{
		Accounts:        handler.NewAccountHandler(accountService),
		Passbook:        handler.NewPassbookHandler(passbookService, entryService),
		Health:          handler.NewHealthHandler(db, version),
		WriteMiddleware: []gin.HandlerFunc{middleware.BodyLimit(middleware.DefaultMaxBodyBytes)},
	}
	if cfg.HTTP.MetricsEnabled {
		handlers.Metrics = registry.Handler()
	}
	router.Setup(engine, handlers, router.WithAPIVersion("v1"))

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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
