package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/billpay/payment-service/internal/config"
)

const (
	resultKeyPrefix = "idempotency:"
	lockKeyPrefix   = "lock:idempotency:"
)

// RedisService implements the IdempotencyService interface on Redis. Locks
// use SET NX with a TTL so an abandoned request cannot block a key forever;
// recorded results expire after the configured idempotency TTL.
type RedisService struct {
	client  *redis.Client
	lockTTL time.Duration
	logger  *zap.Logger
}

// NewClient connects to Redis and verifies the connection.
func NewClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisService creates a new Redis-backed idempotency service
func NewRedisService(client *redis.Client, lockTTL time.Duration, logger *zap.Logger) *RedisService {
	return &RedisService{
		client:  client,
		lockTTL: lockTTL,
		logger:  logger,
	}
}

func (s *RedisService) AcquireLock(ctx context.Context, key string) (bool, error) {
	acquired, err := s.client.SetNX(ctx, lockKeyPrefix+key, "1", s.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if acquired {
		s.logger.Debug("lock acquired", zap.String("idempotency_key", key))
	} else {
		s.logger.Debug("lock not available", zap.String("idempotency_key", key))
	}
	return acquired, nil
}

func (s *RedisService) ReleaseLock(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, lockKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	s.logger.Debug("lock released", zap.String("idempotency_key", key))
	return nil
}

func (s *RedisService) GetResult(ctx context.Context, key string) (string, bool, error) {
	paymentID, err := s.client.Get(ctx, resultKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get idempotency result: %w", err)
	}
	return paymentID, true, nil
}

func (s *RedisService) SaveResult(ctx context.Context, key, paymentID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, resultKeyPrefix+key, paymentID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save idempotency result: %w", err)
	}
	s.logger.Debug("idempotency result saved",
		zap.String("idempotency_key", key),
		zap.String("payment_id", paymentID))
	return nil
}
