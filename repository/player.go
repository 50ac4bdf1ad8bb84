package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"go-scoundrel/entities"

	"github.com/go-redis/redis/v8"
	"github.com/mitchellh/mapstructure"
)

// SessionTTL 未结束的对局快照保留 24 小时
const SessionTTL = 24 * time.Hour

func profileKey(playerID string) string {
	return fmt.Sprintf("player:%s:profile", playerID)
}

func sessionKey(playerID string) string {
	return fmt.Sprintf("game:%s:state", playerID)
}

func submitKey(key string) string {
	return fmt.Sprintf("submit:%s", key)
}

// RedisPlayerStore keeps profiles as hashes, running games as JSON
// snapshots and submission cooldowns as expiring keys.
type RedisPlayerStore struct {
	rdb *redis.Client
}

func NewRedisPlayerStore(rdb *redis.Client) *RedisPlayerStore {
	return &RedisPlayerStore{rdb: rdb}
}

func (s *RedisPlayerStore) GetProfile(ctx context.Context, playerID string) (entities.PlayerProfile, error) {
	profile := entities.PlayerProfile{PlayerID: playerID}
	fields, err := s.rdb.HGetAll(ctx, profileKey(playerID)).Result()
	if err != nil {
		return profile, fmt.Errorf("获取玩家档案失败: %w", err)
	}
	if len(fields) == 0 {
		return profile, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToIntHookFunc(),
		Result:     &profile,
	})
	if err != nil {
		return profile, err
	}
	if err := decoder.Decode(fields); err != nil {
		return profile, fmt.Errorf("解析玩家档案失败: %w", err)
	}
	profile.PlayerID = playerID
	return profile, nil
}

func (s *RedisPlayerStore) SaveProfile(ctx context.Context, profile entities.PlayerProfile) error {
	stats := profile.Statistics
	fields := map[string]interface{}{
		"high_score":           profile.HighScore,
		"daily_streak":         profile.DailyStreak,
		"daily_last_completed": profile.DailyLastCompleted,
		"daily_completed":      profile.DailyCompleted,
		"games_played":         stats.GamesPlayed,
		"games_won":            stats.GamesWon,
		"total_win_score":      stats.TotalWinScore,
		"best_score":           stats.BestScore,
		"longest_win_streak":   stats.LongestWinStreak,
		"current_win_streak":   stats.CurrentWinStreak,
	}
	if err := s.rdb.HSet(ctx, profileKey(profile.PlayerID), fields).Err(); err != nil {
		return fmt.Errorf("保存玩家档案失败: %w", err)
	}
	return nil
}

func (s *RedisPlayerStore) LoadSession(ctx context.Context, playerID string) (entities.GameState, bool, error) {
	var state entities.GameState
	data, err := s.rdb.Get(ctx, sessionKey(playerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return state, false, nil
	}
	if err != nil {
		return state, false, fmt.Errorf("读取对局快照失败: %w", err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, false, fmt.Errorf("解析对局快照失败: %w", err)
	}
	return state, true, nil
}

func (s *RedisPlayerStore) SaveSession(ctx context.Context, playerID string, state entities.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("序列化对局快照失败: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(playerID), data, SessionTTL).Err(); err != nil {
		return fmt.Errorf("保存对局快照失败: %w", err)
	}
	return nil
}

func (s *RedisPlayerStore) DeleteSession(ctx context.Context, playerID string) error {
	return s.rdb.Del(ctx, sessionKey(playerID)).Err()
}

// Allow 使用 SETNX 加过期时间实现提交冷却
func (s *RedisPlayerStore) Allow(ctx context.Context, key string, window time.Duration) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, submitKey(key), time.Now().Unix(), window).Result()
	if err != nil {
		return false, fmt.Errorf("提交冷却检查失败: %w", err)
	}
	return ok, nil
}

// 自定义 HookFunc，把字符串转换成 int
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from == reflect.String && to == reflect.Int {
			s := data.(string)
			if s == "" {
				return 0, nil
			}
			return strconv.Atoi(s)
		}
		return data, nil
	}
}

var (
	_ ProfileStore      = (*RedisPlayerStore)(nil)
	_ SessionStore      = (*RedisPlayerStore)(nil)
	_ SubmissionLimiter = (*RedisPlayerStore)(nil)
)
