package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go-scoundrel/entities"

	"github.com/go-redis/redis/v8"
)

const maxUnixSeconds = 9999999999

// RedisLeaderboard 用有序集合排名，条目本身以 JSON 存在 hash 里
type RedisLeaderboard struct {
	rdb *redis.Client
}

func NewRedisLeaderboard(rdb *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{rdb: rdb}
}

func boardKeys(date string) (rankKey, entryKey string) {
	if date == "" {
		return "leaderboard:all:rank", "leaderboard:all:entries"
	}
	return fmt.Sprintf("leaderboard:daily:%s:rank", date), fmt.Sprintf("leaderboard:daily:%s:entries", date)
}

func dailyNicknameKey(date string) string {
	return fmt.Sprintf("leaderboard:daily:%s:nicknames", date)
}

// rankScore 分数高的在前，同分时先提交的在前
func rankScore(entry entities.LeaderboardEntry) float64 {
	return float64(entry.Score)*1e10 + float64(maxUnixSeconds-entry.CreatedAt.Unix())
}

func (s *RedisLeaderboard) Insert(ctx context.Context, entry entities.LeaderboardEntry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("序列化排行榜条目失败: %w", err)
	}

	if entry.ChallengeDate != "" {
		added, err := s.rdb.SAdd(ctx, dailyNicknameKey(entry.ChallengeDate), entry.Nickname).Result()
		if err != nil {
			return fmt.Errorf("记录每日昵称失败: %w", err)
		}
		if added == 0 {
			return ErrDuplicateEntry
		}
	}

	rankKey, entryKey := boardKeys(entry.ChallengeDate)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, entryKey, entry.ID, data)
	pipe.ZAdd(ctx, rankKey, &redis.Z{Score: rankScore(entry), Member: entry.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("写入排行榜失败: %w", err)
	}
	return nil
}

func (s *RedisLeaderboard) Top(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error) {
	return s.top(ctx, "", limit)
}

func (s *RedisLeaderboard) DailyTop(ctx context.Context, date string, limit int) ([]entities.LeaderboardEntry, error) {
	return s.top(ctx, date, limit)
}

func (s *RedisLeaderboard) HasDailyEntry(ctx context.Context, date, nickname string) (bool, error) {
	ok, err := s.rdb.SIsMember(ctx, dailyNicknameKey(date), nickname).Result()
	if err != nil {
		return false, fmt.Errorf("查询每日昵称失败: %w", err)
	}
	return ok, nil
}

func (s *RedisLeaderboard) top(ctx context.Context, date string, limit int) ([]entities.LeaderboardEntry, error) {
	entries := []entities.LeaderboardEntry{}
	if limit <= 0 {
		return entries, nil
	}
	rankKey, entryKey := boardKeys(date)
	ids, err := s.rdb.ZRevRange(ctx, rankKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("读取排行榜失败: %w", err)
	}
	if len(ids) == 0 {
		return entries, nil
	}

	raws, err := s.rdb.HMGet(ctx, entryKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("读取排行榜条目失败: %w", err)
	}
	for i, raw := range raws {
		str, ok := raw.(string)
		if !ok {
			// 排名存在但条目缺失，跳过
			continue
		}
		var entry entities.LeaderboardEntry
		if err := json.Unmarshal([]byte(str), &entry); err != nil {
			return nil, fmt.Errorf("解析排行榜条目 %s 失败: %w", ids[i], err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

var _ LeaderboardStore = (*RedisLeaderboard)(nil)
