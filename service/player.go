package service

import (
	"fmt"

	"go-scoundrel/dto"
	"go-scoundrel/utils"

	"github.com/google/uuid"
)

type PlayerService struct {
	tokens *utils.TokenIssuer
}

func NewPlayerService(tokens *utils.TokenIssuer) *PlayerService {
	return &PlayerService{tokens: tokens}
}

// Login 匿名登录；带上仍有效的旧 token 时沿用原玩家 ID
func (s *PlayerService) Login(req dto.LoginRequest) (dto.LoginResponse, error) {
	playerID := ""
	if req.Token != "" {
		if claims, err := s.tokens.ParseAccessToken(req.Token); err == nil {
			playerID = claims.PlayerID
		}
	}
	if playerID == "" {
		playerID = uuid.NewString()
	}

	token, err := s.tokens.GenerateAccessToken(playerID)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("签发 token 失败: %w", err)
	}
	return dto.LoginResponse{PlayerID: playerID, AccessToken: token}, nil
}

// Authenticate resolves an access token to its player id.
func (s *PlayerService) Authenticate(token string) (string, error) {
	claims, err := s.tokens.ParseAccessToken(token)
	if err != nil {
		return "", err
	}
	return claims.PlayerID, nil
}
