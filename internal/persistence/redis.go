package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/BadhanCB/outfitex-backend/internal/config"
)

const redisConnectTimeout = 3 * time.Second

// Redis holds the client backing the catalog list cache. The cache is
// optional: a failed connect is logged and reads fall through to Postgres.
type Redis struct {
	Client *redis.Client
}

// NewRedis builds the cache client and checks it once within a bounded wait.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	opts := redisOptions(cfg)
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("catalog cache unavailable, serving lists from postgres",
			zap.String("addr", opts.Addr), zap.Error(err))
	} else {
		logger.Info("catalog cache connected",
			zap.String("addr", opts.Addr), zap.Int("db", opts.DB), zap.Int("pool_size", opts.PoolSize))
	}

	return &Redis{Client: client}
}

// redisOptions maps configuration onto client options. Zero values keep the
// go-redis defaults.
func redisOptions(cfg config.RedisConfig) *redis.Options {
	opts := &redis.Options{
		Addr:       cfg.Addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		ClientName: "outfitex-catalog",
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 && (cfg.PoolSize <= 0 || cfg.MinIdleConns <= cfg.PoolSize) {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if d := cfg.DialTimeout(); d > 0 {
		opts.DialTimeout = d
	}
	return opts
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping reports cache reachability to the readiness endpoint.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
