package entities

import "time"

// LeaderboardEntry is one accepted score. ChallengeDate is empty on the
// all-time board.
type LeaderboardEntry struct {
	ID            string    `json:"id"`
	Nickname      string    `json:"nickname"`
	Score         int       `json:"score"`
	HPRemaining   int       `json:"hp_remaining"`
	ChallengeDate string    `json:"challenge_date,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Ranks reports whether e sorts ahead of other: higher score first, then
// the earlier submission.
func (e LeaderboardEntry) Ranks(other LeaderboardEntry) bool {
	if e.Score != other.Score {
		return e.Score > other.Score
	}
	return e.CreatedAt.Before(other.CreatedAt)
}
