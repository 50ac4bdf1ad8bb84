package service

import (
	"context"
	"fmt"
	"time"

	"go-scoundrel/dto"
	"go-scoundrel/entities"
	"go-scoundrel/game"
	"go-scoundrel/repository"

	"go.uber.org/zap"
)

// ProfileService 负责高分、每日连续、统计数据和每日挑战完成标记
type ProfileService struct {
	store    repository.ProfileStore
	logger   *zap.Logger
	location *time.Location

	Now func() time.Time
}

func NewProfileService(store repository.ProfileStore, logger *zap.Logger, location *time.Location) *ProfileService {
	if location == nil {
		location = time.UTC
	}
	return &ProfileService{store: store, logger: logger, location: location, Now: time.Now}
}

func (s *ProfileService) Today() string {
	return game.DailySeed(s.Now().In(s.location))
}

// Profile returns the stored profile with the streak as seen today.
func (s *ProfileService) Profile(ctx context.Context, playerID string) (entities.PlayerProfile, error) {
	profile, err := s.store.GetProfile(ctx, playerID)
	if err != nil {
		return profile, fmt.Errorf("获取玩家档案失败: %w", err)
	}
	profile.DailyStreak = EffectiveStreak(profile.DailyStreak, profile.DailyLastCompleted, s.Today())
	return profile, nil
}

func (s *ProfileService) ProfileResponse(ctx context.Context, playerID string) (dto.ProfileResponse, error) {
	profile, err := s.Profile(ctx, playerID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	return dto.ProfileResponse{
		PlayerProfile:     profile,
		HasCompletedToday: profile.DailyCompleted == s.Today(),
		WinRate:           profile.Statistics.WinRate(),
		AverageWinScore:   profile.Statistics.AverageWinScore(),
	}, nil
}

// CanStartDaily 每个玩家每天只能挑战一次
func (s *ProfileService) CanStartDaily(ctx context.Context, playerID, seed string) (bool, error) {
	profile, err := s.store.GetProfile(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("获取玩家档案失败: %w", err)
	}
	return profile.DailyCompleted != seed, nil
}

// RecordFinishedGame updates the profile once a game reaches won or lost.
// Games still in progress are ignored.
func (s *ProfileService) RecordFinishedGame(ctx context.Context, playerID string, state entities.GameState) (entities.PlayerProfile, error) {
	profile, err := s.store.GetProfile(ctx, playerID)
	if err != nil {
		return profile, fmt.Errorf("获取玩家档案失败: %w", err)
	}
	if !state.IsOver() {
		return profile, nil
	}

	won := state.GameStatus == entities.GameStatusWon
	profile.Statistics = RecordGame(profile.Statistics, won, state.Score)
	profile.HighScore = max(profile.HighScore, state.HighScore)
	if state.IsDailyChallenge && state.DailySeed != nil {
		profile.DailyCompleted = *state.DailySeed
		profile.DailyStreak, profile.DailyLastCompleted = RecordPlay(profile.DailyStreak, profile.DailyLastCompleted, s.Today())
	}

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return profile, fmt.Errorf("保存玩家档案失败: %w", err)
	}
	s.logger.Info("game recorded",
		zap.String("player_id", playerID),
		zap.String("status", string(state.GameStatus)),
		zap.Int("score", state.Score),
		zap.Bool("daily", state.IsDailyChallenge),
	)
	return profile, nil
}
