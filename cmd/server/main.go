package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	httpAdapter "github.com/iho/finplan/internal/adapter/http"
	"github.com/iho/finplan/internal/adapter/http/handler"
	"github.com/iho/finplan/internal/adapter/http/middleware"
	"github.com/iho/finplan/internal/infrastructure/config"
	"github.com/iho/finplan/internal/infrastructure/logger"
	"github.com/iho/finplan/internal/infrastructure/metrics"
	"github.com/iho/finplan/internal/infrastructure/postgres"
	"github.com/iho/finplan/internal/infrastructure/redis"
	"github.com/iho/finplan/internal/ledger"
	"github.com/iho/finplan/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	m := metrics.New()

	ctx := context.Background()

	codec, err := snapshot.NewCodec(cfg.SnapshotKey)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid snapshot key")
	}

	// Backend selection. The pool and redis client stay nil unless
	// their backend is configured; the health handler skips nil ones.
	var store ledger.SnapshotStore
	var pool *pgxpool.Pool
	var redisClient *goredis.Client

	switch cfg.SnapshotBackend {
	case config.BackendFile:
		store, err = snapshot.NewFileStore(cfg.SnapshotPath, codec)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open snapshot file store")
		}
		log.Info().Str("path", cfg.SnapshotPath).Msg("using file snapshot store")

	case config.BackendPostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		store = snapshot.NewPostgresStore(pool, codec)
		log.Info().Msg("using postgres snapshot store")

	case config.BackendRedis:
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		store = snapshot.NewRedisStore(redisClient, codec)
		log.Info().Msg("using redis snapshot store")
	}

	store = snapshot.Instrument(store, m)

	svc := ledger.New(store, ledger.NewULIDGenerator(), ledger.SystemClock{}, log)
	svc.Load(ctx)

	// Catch up obligations on startup, then keep advancing them.
	processed := svc.ProcessDueObligations(ctx)
	m.ObligationsProcessed.Add(float64(len(processed)))
	if len(processed) > 0 {
		log.Info().Int("count", len(processed)).Msg("processed due obligations on startup")
	}

	schedulerCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()
	go runScheduler(schedulerCtx, svc, m, cfg.ObligationInterval, log)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler:  handler.NewTransactionHandler(svc, m),
		BudgetHandler:       handler.NewBudgetHandler(svc),
		GoalHandler:         handler.NewGoalHandler(svc, m),
		RecurringHandler:    handler.NewRecurringHandler(svc, m),
		ForecastHandler:     handler.NewForecastHandler(svc, m),
		NotificationHandler: handler.NewNotificationHandler(svc, m),
		CurrencyHandler:     handler.NewCurrencyHandler(svc),
		SettingsHandler:     handler.NewSettingsHandler(svc),
		HealthHandler:       handler.NewHealthHandler(pool, redisClient),

		Logging:     middleware.NewLoggingMiddleware(log),
		Metrics:     middleware.NewMetricsMiddleware(m),
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
