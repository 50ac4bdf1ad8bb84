package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go-scoundrel/dto"
	"go-scoundrel/entities"
	"go-scoundrel/game"
	"go-scoundrel/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	LeaderboardLimit      = 50
	DailyLeaderboardLimit = 100
	MaxNicknameLength     = 20
)

// 提交校验失败的原因，controller 据此映射状态码
var (
	ErrInvalidNickname  = errors.New("invalid nickname")
	ErrInvalidScore     = errors.New("invalid score data")
	ErrDateRequired     = errors.New("date required")
	ErrInvalidDate      = errors.New("invalid date format")
	ErrNotToday         = errors.New("challenge date is not today")
	ErrRateLimited      = errors.New("too many submissions")
	ErrAlreadySubmitted = errors.New("already submitted for this date")
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type LeaderboardService struct {
	store    repository.LeaderboardStore
	limiter  repository.SubmissionLimiter
	logger   *zap.Logger
	salt     string
	cooldown time.Duration
	location *time.Location

	Now func() time.Time
}

type LeaderboardOptions struct {
	IPHashSalt string
	Cooldown   time.Duration
	Location   *time.Location
}

func NewLeaderboardService(store repository.LeaderboardStore, limiter repository.SubmissionLimiter, logger *zap.Logger, opts LeaderboardOptions) *LeaderboardService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &LeaderboardService{
		store:    store,
		limiter:  limiter,
		logger:   logger,
		salt:     opts.IPHashSalt,
		cooldown: opts.Cooldown,
		location: opts.Location,
		Now:      time.Now,
	}
}

// Cooldown is the minimum gap between two submissions from one address.
func (s *LeaderboardService) Cooldown() time.Duration {
	return s.cooldown
}

// Today 当天的每日挑战种子
func (s *LeaderboardService) Today() string {
	return game.DailySeed(s.Now().In(s.location))
}

func (s *LeaderboardService) Leaderboard(ctx context.Context) ([]entities.LeaderboardEntry, error) {
	entries, err := s.store.Top(ctx, LeaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("获取排行榜失败: %w", err)
	}
	return entries, nil
}

func (s *LeaderboardService) DailyLeaderboard(ctx context.Context, date string) ([]entities.LeaderboardEntry, error) {
	if date == "" {
		return nil, ErrDateRequired
	}
	if !datePattern.MatchString(date) {
		return nil, ErrInvalidDate
	}
	entries, err := s.store.DailyTop(ctx, date, DailyLeaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("获取每日排行榜失败: %w", err)
	}
	return entries, nil
}

func (s *LeaderboardService) SubmitScore(ctx context.Context, req dto.SubmitScoreRequest, clientIP string) (entities.LeaderboardEntry, error) {
	req.ChallengeDate = ""
	return s.submit(ctx, req, clientIP, false)
}

func (s *LeaderboardService) SubmitDailyScore(ctx context.Context, req dto.SubmitScoreRequest, clientIP string) (entities.LeaderboardEntry, error) {
	return s.submit(ctx, req, clientIP, true)
}

func (s *LeaderboardService) submit(ctx context.Context, req dto.SubmitScoreRequest, clientIP string, daily bool) (entities.LeaderboardEntry, error) {
	nickname, ok := SanitizeNickname(req.Nickname)
	if !ok {
		return entities.LeaderboardEntry{}, ErrInvalidNickname
	}
	if err := game.CheckScore(req.ScoreValue(), req.HPValue()); err != nil {
		return entities.LeaderboardEntry{}, fmt.Errorf("%w: %w", ErrInvalidScore, err)
	}

	if daily {
		switch {
		case req.ChallengeDate == "":
			return entities.LeaderboardEntry{}, ErrDateRequired
		case !datePattern.MatchString(req.ChallengeDate):
			return entities.LeaderboardEntry{}, ErrInvalidDate
		case req.ChallengeDate != s.Today():
			return entities.LeaderboardEntry{}, ErrNotToday
		}
	}

	allowed, err := s.limiter.Allow(ctx, HashIP(clientIP, s.salt), s.cooldown)
	if err != nil {
		return entities.LeaderboardEntry{}, fmt.Errorf("提交频率检查失败: %w", err)
	}
	if !allowed {
		return entities.LeaderboardEntry{}, ErrRateLimited
	}

	if daily {
		exists, err := s.store.HasDailyEntry(ctx, req.ChallengeDate, nickname)
		if err != nil {
			return entities.LeaderboardEntry{}, fmt.Errorf("查询每日提交失败: %w", err)
		}
		if exists {
			return entities.LeaderboardEntry{}, ErrAlreadySubmitted
		}
	}

	entry := entities.LeaderboardEntry{
		ID:            uuid.NewString(),
		Nickname:      nickname,
		Score:         int(req.ScoreValue()),
		HPRemaining:   int(req.HPValue()),
		ChallengeDate: req.ChallengeDate,
		CreatedAt:     s.Now().UTC(),
	}
	if err := s.store.Insert(ctx, entry); err != nil {
		// 并发提交时由存储层唯一约束兜底
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return entities.LeaderboardEntry{}, ErrAlreadySubmitted
		}
		return entities.LeaderboardEntry{}, fmt.Errorf("保存分数失败: %w", err)
	}

	s.logger.Info("score submitted",
		zap.String("id", entry.ID),
		zap.String("nickname", entry.Nickname),
		zap.Int("score", entry.Score),
		zap.String("challenge_date", entry.ChallengeDate),
	)
	return entry, nil
}

// SanitizeNickname trims raw, drops markup characters and reports whether
// 1 to 20 characters remain.
func SanitizeNickname(raw string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>&"'/\`, r) {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	n := utf8.RuneCountInString(cleaned)
	if n < 1 || n > MaxNicknameLength {
		return "", false
	}
	return cleaned, true
}

// HashIP 加盐哈希，不落地原始 IP
func HashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])
}
