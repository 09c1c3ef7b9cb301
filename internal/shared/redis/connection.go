package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"planets-galaxy/internal/shared/config"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
}

// Connect returns a nil client when Redis is disabled; callers fall back to in-process locking
func Connect(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	logger := slog.With("component", "redis", "operation", "connect")

	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory fallback")
		return nil, nil
	}

	opts, err := options(cfg)
	if err != nil {
		logger.Error("Failed to parse Redis URL", "error", err)
		return nil, err
	}
	logger.Debug("Connecting to Redis", "addr", opts.Addr, "db", opts.DB)

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Error("Failed to ping Redis", "error", err)
		if closeErr := rdb.Close(); closeErr != nil {
			logger.Error("Failed to close Redis client after ping failure", "close_error", closeErr)
		}
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return &Client{rdb}, nil
}

// options prefers REDIS_URL and otherwise builds from host and port. The
// generator only ever holds one lock, so the pool stays small.
func options(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		return opts, nil
	}

	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     2,
		MinIdleConns: 1,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
