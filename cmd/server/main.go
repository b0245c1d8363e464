package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/billpay/payment-service/internal/config"
	"github.com/billpay/payment-service/internal/infrastructure/database"
	httpServer "github.com/billpay/payment-service/internal/infrastructure/http"
	"github.com/billpay/payment-service/internal/infrastructure/idempotency"
	"github.com/billpay/payment-service/internal/infrastructure/processor"
	"github.com/billpay/payment-service/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, logger); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations
	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis for idempotency and locking
	redisClient, err := idempotency.NewClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	idempotencyService := idempotency.NewRedisService(redisClient, cfg.Payment.LockTTL(), logger)

	// Initialize repositories and domain services
	repos := database.NewRepositories(db, logger)
	paymentProcessor := processor.NewSimulated(
		decimal.NewFromFloat(cfg.Payment.AmountSuccessThreshold),
		cfg.Payment.RetrySuccessProbability,
		logger,
	)

	usecases := httpServer.Usecases{
		Create: usecase.NewCreatePaymentUseCase(
			repos.Payment,
			paymentProcessor,
			idempotencyService,
			cfg.Payment.IdempotencyTTL(),
			cfg.Payment.MaxRetries,
			logger,
		),
		Retry: usecase.NewRetryPaymentUseCase(
			repos.Payment,
			paymentProcessor,
			cfg.Payment.MaxRetries,
			logger,
		),
		Query: usecase.NewPaymentQueryUseCase(repos.Payment, logger),
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize and start the HTTP server
	httpSrv := httpServer.NewServer(cfg, logger, usecases)

	go func() {
		if err := httpSrv.Start(); err != nil {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	logger.Info("Server shut down successfully")
}
