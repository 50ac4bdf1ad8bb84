package repository

import (
	"context"
	"errors"
	"time"

	"go-scoundrel/entities"
)

var (
	// ErrDuplicateEntry is returned when a nickname already holds an entry
	// on a daily board.
	ErrDuplicateEntry = errors.New("duplicate leaderboard entry")
	ErrInvalidEntry   = errors.New("invalid leaderboard entry")
)

// LeaderboardStore persists accepted scores. An entry with a ChallengeDate
// goes to that date's board, otherwise to the all-time board.
type LeaderboardStore interface {
	Insert(ctx context.Context, entry entities.LeaderboardEntry) error
	Top(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error)
	DailyTop(ctx context.Context, date string, limit int) ([]entities.LeaderboardEntry, error)
	HasDailyEntry(ctx context.Context, date, nickname string) (bool, error)
}

// SubmissionLimiter admits at most one submission per key per window.
type SubmissionLimiter interface {
	Allow(ctx context.Context, key string, window time.Duration) (bool, error)
}

// ProfileStore returns a zero profile for unknown players.
type ProfileStore interface {
	GetProfile(ctx context.Context, playerID string) (entities.PlayerProfile, error)
	SaveProfile(ctx context.Context, profile entities.PlayerProfile) error
}

// SessionStore keeps the last snapshot of a player's running game.
type SessionStore interface {
	LoadSession(ctx context.Context, playerID string) (entities.GameState, bool, error)
	SaveSession(ctx context.Context, playerID string, state entities.GameState) error
	DeleteSession(ctx context.Context, playerID string) error
}

func validateEntry(entry entities.LeaderboardEntry) error {
	if entry.ID == "" || entry.Nickname == "" || entry.CreatedAt.IsZero() {
		return ErrInvalidEntry
	}
	return nil
}
