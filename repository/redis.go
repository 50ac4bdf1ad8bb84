// redis.go
package repository

import (
	"context"
	"fmt"

	"go-scoundrel/config"

	"github.com/go-redis/redis/v8"
)

// NewRedis 连接 Redis 并确认可用
func NewRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}
	return rdb, nil
}
