package service

import (
	"time"

	"go-scoundrel/entities"
)

const dateLayout = "2006-01-02"

func previousDay(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(dateLayout)
}

// RecordPlay advances a daily streak for a completion on today. A second
// completion on the same day changes nothing, a completion the day after
// the last one extends the streak, anything else restarts it at 1.
func RecordPlay(streak int, lastCompleted, today string) (int, string) {
	switch {
	case lastCompleted == today:
		return streak, today
	case lastCompleted == previousDay(today) && streak > 0:
		return streak + 1, today
	default:
		return 1, today
	}
}

// EffectiveStreak is the streak as shown on today: it survives until the
// end of the day after the last completion.
func EffectiveStreak(streak int, lastCompleted, today string) int {
	if lastCompleted == "" || streak == 0 {
		return 0
	}
	if lastCompleted == today || lastCompleted == previousDay(today) {
		return streak
	}
	return 0
}

// RecordGame folds one finished game into the statistics. Only wins count
// towards score totals.
func RecordGame(stats entities.Statistics, won bool, score int) entities.Statistics {
	stats.GamesPlayed++
	if !won {
		stats.CurrentWinStreak = 0
		return stats
	}
	stats.GamesWon++
	stats.TotalWinScore += score
	stats.BestScore = max(stats.BestScore, score)
	stats.CurrentWinStreak++
	stats.LongestWinStreak = max(stats.LongestWinStreak, stats.CurrentWinStreak)
	return stats
}
