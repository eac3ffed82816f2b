package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/architdhariwal/sms-backend/internal/api/http"
	"github.com/architdhariwal/sms-backend/internal/api/http/handlers"
	"github.com/architdhariwal/sms-backend/internal/auth"
	"github.com/architdhariwal/sms-backend/internal/config"
	"github.com/architdhariwal/sms-backend/internal/events"
	"github.com/architdhariwal/sms-backend/internal/observability"
	"github.com/architdhariwal/sms-backend/internal/persistence"
	"github.com/architdhariwal/sms-backend/internal/repository"
	"github.com/architdhariwal/sms-backend/internal/service"
	"github.com/architdhariwal/sms-backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	var (
		metrics  *observability.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = observability.NewMetrics(reg)
		gatherer = reg
	}

	store, err := persistence.NewStoreFromConfig(cfg.Storage, logger, metrics)
	if err != nil {
		logger.Fatal("failed to open data directory", zap.String("dir", cfg.Storage.DataDir), zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	studentRepo := repository.NewStudentRepository(store, dispatcher, logger, cfg.Auth.BcryptCost)
	bookRepo := repository.NewBookRepository(store, dispatcher, logger)

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}
	authService := service.NewAuthService(service.AuthDependencies{
		Students: studentRepo,
		Tokens:   tokens,
		Logger:   logger,
	})

	loginLimiter := httptransport.NewLoginLimiter(httptransport.LoginLimiterConfig{
		PerMinute: cfg.Auth.LoginRatePerMinute,
		Burst:     cfg.Auth.LoginBurst,
	}, logger)
	defer loginLimiter.Stop()

	app := httptransport.NewApp(cfg.App.Name, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:     cfg.App.RequestTimeout(),
		FrontendURL: cfg.App.FrontendURL,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, logger),
		Auth:           handlers.NewAuthHandler(authService),
		Students:       handlers.NewStudentsHandler(authService, studentRepo),
		Books:          handlers.NewBooksHandler(bookRepo),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, logger),
		LoginLimiter:   loginLimiter,
		Metrics:        gatherer,
	})

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("data_dir", store.Dir()),
			zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
