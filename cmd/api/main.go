package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/api/handler"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/api/middleware"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/config"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/infrastructure/memory"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/infrastructure/postgres"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/infrastructure/rabbitmq"
	redisinfra "github.com/sanosuguru/cinema-ticket-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/pkg/logger"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/pkg/metrics"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/server"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/worker"
)

func main() {
	if err := run(); err != nil {
		logger.Error("起動に失敗しました", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger.Set(logger.NewLogger(cfg.App.Env))
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.Init()
	deps := server.Dependencies{
		CacheTTL:        cfg.Redis.CacheTTL,
		Metrics:         m,
		MetricsGatherer: prometheus.DefaultGatherer,
		MetricsAuth:     middleware.NewMetricsConfig(&cfg.Server),
		HealthChecks:    map[string]handler.HealthCheck{},
	}

	// 在庫ストア
	switch cfg.App.Store {
	case "memory":
		store := memory.NewStore()
		deps.TxManager = store
		deps.SessionRepo = memory.NewSessionRepository(store)
		deps.SeatRepo = memory.NewSeatRepository(store)
		deps.TicketRepo = memory.NewTicketRepository(store)
		deps.FilmRepo = memory.NewFilmRepository(store)
		logger.Warn("インメモリストアで起動します（再起動でデータは失われます）")
	case "postgres":
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			return fmt.Errorf("データベース接続に失敗: %w", err)
		}
		defer db.Close()

		if err := postgres.RunMigrations(db.DB, cfg.Database.MigrationsPath); err != nil {
			return fmt.Errorf("マイグレーションに失敗: %w", err)
		}
		deps.TxManager = postgres.NewTxManager(db)
		deps.SessionRepo = postgres.NewSessionRepository(db)
		deps.SeatRepo = postgres.NewSeatRepository(db)
		deps.TicketRepo = postgres.NewTicketRepository(db)
		deps.FilmRepo = postgres.NewFilmRepository(db)
		deps.HealthChecks["postgres"] = func(ctx context.Context) error { return postgres.Ping(ctx, db) }
		logger.Info("PostgreSQLに接続しました", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))
	default:
		return fmt.Errorf("不明なストア種別です: %s", cfg.App.Store)
	}

	// 空席数キャッシュ（任意）
	if cfg.Redis.Enabled {
		rc, err := redisinfra.NewClient(&cfg.Redis)
		if err != nil {
			logger.Warn("Redisに接続できないためキャッシュなしで起動します", zap.Error(err))
		} else {
			defer rc.Close()
			deps.Cache = redisinfra.NewSeatCache(rc)
			deps.HealthChecks["redis"] = func(ctx context.Context) error { return redisinfra.Ping(ctx, rc) }
		}
	}

	// 発券イベント送信（任意）
	if cfg.RabbitMQ.URL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			logger.Warn("RabbitMQに接続できないため発券イベントを送信しません", zap.Error(err))
		} else {
			defer pub.Close()
			deps.Publisher = pub
		}
	}

	e := server.New(deps)
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	auditor := worker.NewInventoryAuditor(deps.SessionRepo, m, cfg.Audit.Interval)
	go auditor.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("サーバーを起動します", zap.String("port", cfg.Server.Port), zap.String("store", cfg.App.Store))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		auditor.Stop()
		return fmt.Errorf("サーバー起動エラー: %w", err)
	}

	logger.Info("サーバーをシャットダウンしています...")
	auditor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("サーバーシャットダウンエラー: %w", err)
	}

	logger.Info("サーバーが正常にシャットダウンしました")
	return nil
}
