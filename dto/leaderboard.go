package dto

// SubmitScoreRequest 数值用指针接收，缺失字段按 0 处理，由校验拒绝
type SubmitScoreRequest struct {
	Nickname      string   `json:"nickname"`
	Score         *float64 `json:"score"`
	HPRemaining   *float64 `json:"hp_remaining"`
	ChallengeDate string   `json:"challenge_date"`
}

func (r SubmitScoreRequest) ScoreValue() float64 {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}

func (r SubmitScoreRequest) HPValue() float64 {
	if r.HPRemaining == nil {
		return 0
	}
	return *r.HPRemaining
}

type DailyResponse struct {
	Date string `json:"date"`
}
