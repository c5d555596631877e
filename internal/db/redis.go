package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fixia-ar/fixia/internal/config"
	"github.com/fixia-ar/fixia/internal/logger"
)

var Redis *redis.Client

// InitRedis connects the shared Redis client used for short-lived caches.
// Redis being down is not fatal: callers treat cache errors as misses.
func InitRedis(cfg *config.Config) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := Redis.Ping(ctx).Err(); err != nil {
		logger.L.Warn("redis unreachable, caching disabled until it recovers",
			zap.String("addr", cfg.RedisAddr), zap.Error(err))
		return
	}
	logger.L.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
}
