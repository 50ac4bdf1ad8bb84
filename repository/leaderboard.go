package repository

import (
	"context"
	"fmt"

	"go-scoundrel/config"

	"github.com/go-redis/redis/v8"
)

// OpenLeaderboard picks the leaderboard backend named in cfg. The returned
// close func releases SQL handles; it is a no-op for redis.
func OpenLeaderboard(ctx context.Context, cfg config.Config, rdb *redis.Client) (LeaderboardStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.LeaderboardBackend {
	case config.BackendRedis:
		if rdb == nil {
			return nil, noop, fmt.Errorf("redis leaderboard needs a redis client")
		}
		return NewRedisLeaderboard(rdb), noop, nil
	case config.BackendMySQL:
		store, err := OpenMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case config.BackendSQLite:
		store, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown leaderboard backend %q", cfg.LeaderboardBackend)
	}
}
