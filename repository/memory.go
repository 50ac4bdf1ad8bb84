package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-scoundrel/entities"
	"go-scoundrel/utils"
)

// MemoryLeaderboard is an in-process LeaderboardStore.
type MemoryLeaderboard struct {
	mu      sync.RWMutex
	allTime []entities.LeaderboardEntry
	daily   map[string][]entities.LeaderboardEntry
}

func NewMemoryLeaderboard() *MemoryLeaderboard {
	return &MemoryLeaderboard{daily: make(map[string][]entities.LeaderboardEntry)}
}

func (m *MemoryLeaderboard) Insert(_ context.Context, entry entities.LeaderboardEntry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry.ChallengeDate == "" {
		m.allTime = append(m.allTime, entry)
		return nil
	}
	for _, e := range m.daily[entry.ChallengeDate] {
		if e.Nickname == entry.Nickname {
			return ErrDuplicateEntry
		}
	}
	m.daily[entry.ChallengeDate] = append(m.daily[entry.ChallengeDate], entry)
	return nil
}

func (m *MemoryLeaderboard) Top(_ context.Context, limit int) ([]entities.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ranked(m.allTime, limit), nil
}

func (m *MemoryLeaderboard) DailyTop(_ context.Context, date string, limit int) ([]entities.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ranked(m.daily[date], limit), nil
}

func (m *MemoryLeaderboard) HasDailyEntry(_ context.Context, date, nickname string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.daily[date] {
		if e.Nickname == nickname {
			return true, nil
		}
	}
	return false, nil
}

func ranked(entries []entities.LeaderboardEntry, limit int) []entities.LeaderboardEntry {
	out := append([]entities.LeaderboardEntry{}, entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ranks(out[j]) })
	if limit < 0 {
		limit = 0
	}
	return utils.SafeSlice(out, limit)
}

// MemoryLimiter is an in-process SubmissionLimiter.
type MemoryLimiter struct {
	mu   sync.Mutex
	last map[string]time.Time
	Now  func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{last: make(map[string]time.Time), Now: time.Now}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string, window time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.Now()
	if at, ok := l.last[key]; ok && now.Sub(at) < window {
		return false, nil
	}
	l.last[key] = now
	return true, nil
}

// MemoryProfiles is an in-process ProfileStore.
type MemoryProfiles struct {
	mu       sync.RWMutex
	profiles map[string]entities.PlayerProfile
}

func NewMemoryProfiles() *MemoryProfiles {
	return &MemoryProfiles{profiles: make(map[string]entities.PlayerProfile)}
}

func (m *MemoryProfiles) GetProfile(_ context.Context, playerID string) (entities.PlayerProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[playerID]
	if !ok {
		return entities.PlayerProfile{PlayerID: playerID}, nil
	}
	return profile, nil
}

func (m *MemoryProfiles) SaveProfile(_ context.Context, profile entities.PlayerProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.PlayerID] = profile
	return nil
}

// MemorySessions is an in-process SessionStore.
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]entities.GameState
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]entities.GameState)}
}

func (m *MemorySessions) LoadSession(_ context.Context, playerID string) (entities.GameState, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.sessions[playerID]
	return state, ok, nil
}

func (m *MemorySessions) SaveSession(_ context.Context, playerID string, state entities.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[playerID] = state
	return nil
}

func (m *MemorySessions) DeleteSession(_ context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, playerID)
	return nil
}

var (
	_ LeaderboardStore  = (*MemoryLeaderboard)(nil)
	_ SubmissionLimiter = (*MemoryLimiter)(nil)
	_ ProfileStore      = (*MemoryProfiles)(nil)
	_ SessionStore      = (*MemorySessions)(nil)
)
