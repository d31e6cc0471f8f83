package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/activity"
	"github.com/xela07ax/inventory-console/internal/console/handler"
	"github.com/xela07ax/inventory-console/internal/console/server"
	"github.com/xela07ax/inventory-console/internal/console/service"
	"github.com/xela07ax/inventory-console/internal/gateway"
	"github.com/xela07ax/inventory-console/internal/infra"
	"github.com/xela07ax/inventory-console/internal/inventory"
	"github.com/xela07ax/inventory-console/internal/repository/postgres"
	"github.com/xela07ax/inventory-console/internal/session"
	"github.com/xela07ax/inventory-console/internal/tokenstore"
)

func main() {
	// 1. Конфигурация и логгер
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Контекст жизненного цикла: отменяется по SIGINT/SIGTERM
	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.API.BaseURL == "" {
		logger.Warn("api.base_url is empty, every inventory call will fail until it is configured")
	}

	// 2. Инфраструктура: поднимаем только то, что реально выбрано в конфиге
	var deps tokenstore.Backends
	if cfg.Storage.Backend == tokenstore.BackendRedis {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		defer deps.Redis.Close()
	}
	if cfg.Storage.Backend == tokenstore.BackendPostgres || cfg.Activity.Persist {
		deps.DB, err = postgres.Open(cfg.Storage.Postgres.URL, cfg.Storage.Postgres.MaxConns)
		if err != nil {
			logger.Fatal("failed to open database", zap.Error(err))
		}
		defer deps.DB.Close()
	}

	startCtx, startCancel := context.WithTimeout(appCtx, 30*time.Second)
	defer startCancel()

	tokens, err := tokenstore.Open(startCtx, cfg.Storage, deps, logger)
	if err != nil {
		logger.Fatal("failed to open token store", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 3. Журнал действий: лента в памяти и, по желанию, история в Postgres
	feed := activity.NewFeed(cfg.Activity.FeedSize)
	sinks := []activity.Storage{feed}
	var history handler.ActivityHistory
	if cfg.Activity.Persist {
		repo, err := openActivityRepo(startCtx, deps.DB, logger)
		if err != nil {
			logger.Fatal("failed to prepare activity history", zap.Error(err))
		}
		sinks = append(sinks, repo)
		history = repo
	}
	journal := activity.NewJournal(activity.Options{
		BufferSize:    cfg.Activity.BufferSize,
		BatchSize:     cfg.Activity.BatchSize,
		FlushInterval: cfg.Activity.FlushInterval,
		Metrics:       activity.NewMetrics(reg),
	}, logger, sinks...)
	journal.Start()

	// 4. Сессия и шлюз. Шлюз выселяет токен на 401 и уводит сессию на логин
	sess := session.New(tokens, logger)

	gw := gateway.New(cfg.API, cfg.Gateway, tokens, logger,
		gateway.WithRedirector(sess),
		gateway.WithMetrics(gateway.NewMetrics(reg)),
	)
	api := inventory.New(gw, cfg.API.LoginPath)

	// 5. Сервисы и обработчики (Dependency Injection)
	validator := service.NewValidator()
	loginPath := cfg.Server.LoginPath

	console := server.NewConsoleServer(
		cfg.Server,
		logger,
		sess,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		handler.NewAuthHandler(service.NewAuthService(sess, api, journal, logger), logger),
		handler.NewDashboardHandler(service.NewDashboardService(api, logger), loginPath, logger),
		handler.NewProductHandler(service.NewProductService(api, validator, journal, logger), loginPath, logger),
		handler.NewStoreHandler(service.NewStoreService(api, validator, journal, logger), loginPath, logger),
		handler.NewStockHandler(service.NewStockService(api, validator, journal, logger), loginPath, logger),
		handler.NewActivityHandler(feed, history, logger),
	)
	srv := console.HTTPServer()

	go func() {
		logger.Info("console started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// Пока хранилище читается, гард отвечает 503 вместо того, чтобы выкинуть на логин
	go func() {
		if err := sess.Init(appCtx); err != nil {
			logger.Warn("session restored as signed out", zap.Error(err))
		}
	}()

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("console stopping")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	// Дописываем хвост журнала после того, как запросы завершились
	journal.Stop()
	logger.Info("console exited properly")
}

func openActivityRepo(ctx context.Context, db *sql.DB, logger *zap.Logger) (*postgres.ActivityRepo, error) {
	repo := postgres.NewActivityRepo(db)
	if err := tokenstore.Probe(ctx, logger.Named("activity"), "postgres", repo.Ping); err != nil {
		return nil, err
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}
