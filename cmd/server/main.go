package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/rotavend/fechamento/internal/adapter/http"
	"github.com/rotavend/fechamento/internal/adapter/http/handler"
	postgresRepo "github.com/rotavend/fechamento/internal/adapter/repository/postgres"
	redisRepo "github.com/rotavend/fechamento/internal/adapter/repository/redis"
	"github.com/rotavend/fechamento/internal/infrastructure/config"
	"github.com/rotavend/fechamento/internal/infrastructure/logging"
	"github.com/rotavend/fechamento/internal/infrastructure/metrics"
	"github.com/rotavend/fechamento/internal/infrastructure/postgres"
	"github.com/rotavend/fechamento/internal/infrastructure/redis"
	"github.com/rotavend/fechamento/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// The use case layer logs through slog.
	appLogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	slog.SetDefault(appLogger.Logger)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrierWithMaxRetries(cfg.ClosingMaxRetries)
	shareholderRepo := postgresRepo.NewShareholderRepository(pool)
	closingRepo := postgresRepo.NewClosingRepository(pool)
	readingRepo := postgresRepo.NewReadingRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	advanceRepo := postgresRepo.NewAdvanceRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	m := metrics.New()
	guard := usecase.NewPeriodGuard(closingRepo)
	summaryUC := usecase.NewSummaryUseCase(readingRepo, expenseRepo, cache, cfg.SummaryCacheTTL, m)
	closingUC := usecase.NewClosingUseCase(
		txManager, retrier, guard,
		shareholderRepo, closingRepo, readingRepo, expenseRepo, advanceRepo, auditRepo,
		idGen, m,
	)
	readingUC := usecase.NewReadingUseCase(readingRepo, guard, auditRepo, summaryUC, idGen, m)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, guard, auditRepo, summaryUC, idGen, m)
	advanceUC := usecase.NewAdvanceUseCase(advanceRepo, shareholderRepo, guard, auditRepo, idGen, m)
	shareholderUC := usecase.NewShareholderUseCase(shareholderRepo, idGen)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ClosingHandler:     handler.NewClosingHandler(closingUC),
		ReadingHandler:     handler.NewReadingHandler(readingUC),
		ExpenseHandler:     handler.NewExpenseHandler(expenseUC),
		AdvanceHandler:     handler.NewAdvanceHandler(advanceUC),
		ShareholderHandler: handler.NewShareholderHandler(shareholderUC),
		SummaryHandler:     handler.NewSummaryHandler(summaryUC),
		AuditHandler:       handler.NewAuditHandler(auditRepo),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		Logger:             log.Logger,
		Metrics:            m,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
