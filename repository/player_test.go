package repository

import (
	"context"
	"testing"
	"time"

	"go-scoundrel/entities"
	"go-scoundrel/game"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisPlayerStore(t *testing.T) (*RedisPlayerStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisPlayerStore(rdb), mr
}

func TestProfileStores(t *testing.T) {
	ctx := context.Background()
	redisStore, _ := newRedisPlayerStore(t)
	stores := map[string]ProfileStore{
		"memory": NewMemoryProfiles(),
		"redis":  redisStore,
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			empty, err := store.GetProfile(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, entities.PlayerProfile{PlayerID: "p1"}, empty)

			profile := entities.PlayerProfile{
				PlayerID:           "p1",
				HighScore:          27,
				DailyStreak:        3,
				DailyLastCompleted: "2026-10-16",
				DailyCompleted:     "2026-10-16",
				Statistics: entities.Statistics{
					GamesPlayed:      9,
					GamesWon:         4,
					TotalWinScore:    80,
					BestScore:        27,
					LongestWinStreak: 2,
					CurrentWinStreak: 1,
				},
			}
			require.NoError(t, store.SaveProfile(ctx, profile))

			got, err := store.GetProfile(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, profile, got)
		})
	}
}

func TestRedisProfile_DecodesPartialHash(t *testing.T) {
	store, mr := newRedisPlayerStore(t)
	mr.HSet(profileKey("p2"), "high_score", "18", "daily_streak", "")

	got, err := store.GetProfile(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, 18, got.HighScore)
	assert.Equal(t, 0, got.DailyStreak)
	assert.Equal(t, "p2", got.PlayerID)
}

func TestSessionStores(t *testing.T) {
	ctx := context.Background()
	redisStore, mr := newRedisPlayerStore(t)
	stores := map[string]SessionStore{
		"memory": NewMemorySessions(),
		"redis":  redisStore,
	}
	state := game.Reduce(game.NewState(12), game.StartDailyChallenge{Seed: "2026-10-16"})

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.LoadSession(ctx, "p1")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.SaveSession(ctx, "p1", state))
			got, ok, err := store.LoadSession(ctx, "p1")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, state, got)

			require.NoError(t, store.DeleteSession(ctx, "p1"))
			_, ok, err = store.LoadSession(ctx, "p1")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}

	require.NoError(t, redisStore.SaveSession(ctx, "p3", state))
	assert.Equal(t, SessionTTL, mr.TTL(sessionKey("p3")))
}

func TestLimiters(t *testing.T) {
	ctx := context.Background()
	redisStore, mr := newRedisPlayerStore(t)

	now := time.Now()
	memory := NewMemoryLimiter()
	memory.Now = func() time.Time { return now }

	ok, err := memory.Allow(ctx, "ip", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = memory.Allow(ctx, "ip", 30*time.Second)
	assert.False(t, ok)
	ok, _ = memory.Allow(ctx, "other", 30*time.Second)
	assert.True(t, ok)
	now = now.Add(31 * time.Second)
	ok, _ = memory.Allow(ctx, "ip", 30*time.Second)
	assert.True(t, ok)

	ok, err = redisStore.Allow(ctx, "ip", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = redisStore.Allow(ctx, "ip", 30*time.Second)
	assert.False(t, ok)
	mr.FastForward(31 * time.Second)
	ok, _ = redisStore.Allow(ctx, "ip", 30*time.Second)
	assert.True(t, ok)
}
