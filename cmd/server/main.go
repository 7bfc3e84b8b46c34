package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/tanvirhs/resto/internal/config"
	"github.com/tanvirhs/resto/internal/repository/flatfile"
	"github.com/tanvirhs/resto/internal/scheduler"
	"github.com/tanvirhs/resto/internal/server/handlers"
	"github.com/tanvirhs/resto/internal/server/router"
	catalogsvc "github.com/tanvirhs/resto/internal/service/catalog"
	ordersvc "github.com/tanvirhs/resto/internal/service/order"
	reportingsvc "github.com/tanvirhs/resto/internal/service/reporting"
	"github.com/tanvirhs/resto/pkg/clients/notify"
	"github.com/tanvirhs/resto/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogMode))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := flatfile.NewStore(cfg.Storage.DataDir, baseLogger.Named("repo.store"))
	if err != nil {
		baseLogger.Fatal("failed to init durable store", zap.Error(err))
	}

	menuRepo := flatfile.NewMenuRepository(store, cfg.Storage.MenuFile)
	salesRepo := flatfile.NewSalesRepository(store, cfg.Storage.SalesFile)

	catalogSvc, err := catalogsvc.NewService(menuRepo, baseLogger.Named("svc.catalog"))
	if err != nil {
		baseLogger.Fatal("failed to load catalog", zap.Error(err))
	}

	// Initialize notify client
	var notifier notify.Client
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("webhook notifications enabled")
	} else {
		baseLogger.Warn("notify webhook url missing, low-stock alerts and report delivery disabled")
	}

	orderSvc := ordersvc.NewService(catalogSvc, salesRepo, notifier, cfg.Notify.LowStockThreshold, baseLogger.Named("svc.order"))
	reportingSvc := reportingsvc.NewService(salesRepo, cfg.Currency.Code, baseLogger.Named("svc.reporting"))

	menuHandler := handlers.NewMenuHandler(catalogSvc, baseLogger.Named("handlers.menu"))
	orderHandler := handlers.NewOrderHandler(orderSvc, cfg.Currency.Code, baseLogger.Named("handlers.order"))
	salesHandler := handlers.NewSalesHandler(salesRepo, reportingSvc, baseLogger.Named("handlers.sales"))
	engine := router.New(menuHandler, orderHandler, salesHandler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(*cfg, reportingSvc, notifier, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
