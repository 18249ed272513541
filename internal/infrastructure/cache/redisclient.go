package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cerberus-dev/cerberus/internal/infrastructure/database"
	"github.com/cerberus-dev/cerberus/internal/shared/config"
)

const redisConnectWait = 30 * time.Second

// NewRedisClient connects to Redis and waits until it answers PING.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := database.WaitReady(ctx, "redis", redisConnectWait, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
