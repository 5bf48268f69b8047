package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bedboard/internal/config"
	httpapi "bedboard/internal/http"
	"bedboard/internal/repository"
	"bedboard/internal/service"
	"bedboard/pkg/database"
	"bedboard/pkg/logger"
	redisx "bedboard/pkg/redis"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "bedboard")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Store: Postgres when reachable, otherwise the in-memory store so the
	// API still answers during local development.
	var db *sql.DB
	var bedsRepo repository.BedsRepo
	var wardsRepo repository.WardsRepo
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			log.Info("DB enabled for bedboard")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory store", zap.Error(err))
		}
	}
	if db != nil {
		bedsRepo = repository.NewPostgresBedsRepo(db)
		wardsRepo = repository.NewPostgresWardsRepo(db)
	} else {
		mem := repository.NewMemoryStore()
		bedsRepo = mem
		wardsRepo = mem
	}

	// Seed the default hospital layout on an empty store.
	if seeded, err := repository.SeedDefaultLayout(context.Background(), wardsRepo); err != nil {
		log.Warn("seeding default layout failed", zap.Error(err))
	} else if seeded {
		log.Info("seeded default ward layout")
	}

	ledger := service.NewLedgerService(bedsRepo, wardsRepo, log)
	publisher := service.NewPublisher(ledger, cfg.Publisher.Interval, log)

	// Optional snapshot sinks, registered as ordinary subscribers.
	var redisClient *redisx.Client
	if cfg.Publisher.StreamEnabled {
		redisClient = redisx.NewRedisClient(&cfg.Redis)
		if err := redisx.Ping(context.Background(), redisClient); err != nil {
			log.Warn("redis unreachable, stream sink disabled", zap.Error(err))
			_ = redisx.Close(redisClient)
			redisClient = nil
		} else {
			publisher.Subscribe(service.NewStreamSink(redisClient, cfg.Publisher.StreamName))
			log.Info("redis stream sink enabled", zap.String("stream", cfg.Publisher.StreamName))
		}
	}
	if cfg.Publisher.WebhookEnabled && cfg.Publisher.WebhookURL != "" {
		publisher.Subscribe(service.NewWebhookSink(cfg.Publisher.WebhookURL, log))
		log.Info("webhook sink enabled", zap.String("url", cfg.Publisher.WebhookURL))
	}

	router := httpapi.NewRouter(log)
	metricsHandler := httpapi.NewMetricsHandler(ledger, log)
	router.RegisterBedRoutes(
		httpapi.NewBedHandler(ledger, log),
		httpapi.NewUpdatesHandler(ledger, publisher, log),
		metricsHandler,
	)
	router.RegisterAdminRoutes(
		metricsHandler,
		httpapi.NewReportHandler(ledger, log),
	)
	router.RegisterHealthRoutes()

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case <-errCh:
	}

	publisher.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisx.Close(redisClient)
	}
	if db != nil {
		_ = database.Close(db)
	}
}
