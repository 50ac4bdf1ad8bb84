package entities

// Statistics 玩家对局统计，只在对局结束时更新
type Statistics struct {
	GamesPlayed      int `json:"gamesPlayed" mapstructure:"games_played"`
	GamesWon         int `json:"gamesWon" mapstructure:"games_won"`
	TotalWinScore    int `json:"totalWinScore" mapstructure:"total_win_score"`
	BestScore        int `json:"bestScore" mapstructure:"best_score"`
	LongestWinStreak int `json:"longestWinStreak" mapstructure:"longest_win_streak"`
	CurrentWinStreak int `json:"currentWinStreak" mapstructure:"current_win_streak"`
}

// AverageWinScore is 0 until the first win.
func (s Statistics) AverageWinScore() float64 {
	if s.GamesWon == 0 {
		return 0
	}
	return float64(s.TotalWinScore) / float64(s.GamesWon)
}

func (s Statistics) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.GamesWon) / float64(s.GamesPlayed)
}

// PlayerProfile is everything persisted per player between games.
// DailyLastCompleted and DailyCompleted hold YYYY-MM-DD dates.
type PlayerProfile struct {
	PlayerID           string     `json:"playerId" mapstructure:"-"`
	HighScore          int        `json:"highScore" mapstructure:"high_score"`
	DailyStreak        int        `json:"dailyStreak" mapstructure:"daily_streak"`
	DailyLastCompleted string     `json:"dailyLastCompleted" mapstructure:"daily_last_completed"`
	DailyCompleted     string     `json:"dailyCompleted" mapstructure:"daily_completed"`
	Statistics         Statistics `json:"statistics" mapstructure:",squash"`
}
