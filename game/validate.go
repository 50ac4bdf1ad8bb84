package game

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrMalformedScore    = errors.New("malformed score")
	ErrInconsistentScore = errors.New("inconsistent score")
)

const (
	MinSubmittedScore = 1
	MaxSubmittedScore = MaxHP + MaxPotionValue
	MaxPotionValue    = 10
)

// CheckScore verifies a reported (score, hp) pair could come out of a won
// game. The same check gates the leaderboard and any client-side preview.
func CheckScore(score, hpRemaining float64) error {
	if !isInt(score) || score < MinSubmittedScore || score > MaxSubmittedScore {
		return fmt.Errorf("%w: score must be an integer between %d and %d", ErrMalformedScore, MinSubmittedScore, MaxSubmittedScore)
	}
	if !isInt(hpRemaining) || hpRemaining < 1 || hpRemaining > MaxHP {
		return fmt.Errorf("%w: hp must be an integer between 1 and %d", ErrMalformedScore, MaxHP)
	}
	if score < hpRemaining {
		return fmt.Errorf("%w: score is lower than remaining hp", ErrInconsistentScore)
	}
	if score > MaxHP && hpRemaining != MaxHP {
		return fmt.Errorf("%w: potion bonus requires full health", ErrInconsistentScore)
	}
	if score-hpRemaining > MaxPotionValue {
		return fmt.Errorf("%w: bonus exceeds the strongest potion", ErrInconsistentScore)
	}
	return nil
}

func ValidScore(score, hpRemaining float64) bool {
	return CheckScore(score, hpRemaining) == nil
}

func isInt(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}
