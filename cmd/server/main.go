package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/pennybank/pennybank/internal/adapter/http"
	"github.com/pennybank/pennybank/internal/adapter/http/handler"
	"github.com/pennybank/pennybank/internal/adapter/http/middleware"
	postgresRepo "github.com/pennybank/pennybank/internal/adapter/repository/postgres"
	redisRepo "github.com/pennybank/pennybank/internal/adapter/repository/redis"
	"github.com/pennybank/pennybank/internal/infrastructure/auth"
	"github.com/pennybank/pennybank/internal/infrastructure/config"
	"github.com/pennybank/pennybank/internal/infrastructure/eventpublisher"
	"github.com/pennybank/pennybank/internal/infrastructure/logger"
	"github.com/pennybank/pennybank/internal/infrastructure/metrics"
	"github.com/pennybank/pennybank/internal/infrastructure/postgres"
	"github.com/pennybank/pennybank/internal/infrastructure/redis"
	"github.com/pennybank/pennybank/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(log)
	userRepo := postgresRepo.NewUserRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	pendingRepo := postgresRepo.NewPendingTransferRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	userUC := usecase.NewUserUseCase(txManager, userRepo, accountRepo, outboxRepo, idGen)
	ledgerUC := usecase.NewLedgerUseCase(txManager, retrier, accountRepo, txnRepo, outboxRepo, idGen, appMetrics)
	transferUC := usecase.NewTransferUseCase(txManager, retrier, accountRepo, txnRepo, pendingRepo, userRepo, outboxRepo, idGen, appMetrics)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, idGen)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userUC, jwtManager, log)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC, log)
	transferHandler := handler.NewTransferHandler(transferUC, log)
	expenseHandler := handler.NewExpenseHandler(expenseUC, log)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, appMetrics)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UserHandler:      userHandler,
		LedgerHandler:    ledgerHandler,
		TransferHandler:  transferHandler,
		ExpenseHandler:   expenseHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      rateLimiter,
		Metrics:          appMetrics,
		Logger:           log,
	})

	// Start the outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(log),
		Logger:     log,
		Metrics:    appMetrics,
		BatchSize:  cfg.PublisherBatchSize,
		Interval:   cfg.PublisherInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

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
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
