package dto

import "go-scoundrel/entities"

type LoginRequest struct {
	// 已有 token 时沿用原玩家 ID
	Token string `json:"token"`
}

type LoginResponse struct {
	PlayerID    string `json:"playerId"`
	AccessToken string `json:"accessToken"`
}

type ProfileResponse struct {
	entities.PlayerProfile
	HasCompletedToday bool    `json:"hasCompletedToday"`
	WinRate           float64 `json:"winRate"`
	AverageWinScore   float64 `json:"averageWinScore"`
}
