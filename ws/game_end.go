package ws

import (
	"context"

	"go-scoundrel/dto"
	"go-scoundrel/entities"
	"go-scoundrel/game"

	"go.uber.org/zap"
)

// handleGameEnd 结算：写入玩家档案，清掉对局快照，通知客户端
func (h *Hub) handleGameEnd(ctx context.Context, s *Session, state entities.GameState) {
	profile, err := h.profiles.RecordFinishedGame(ctx, s.playerID, state)
	if err != nil {
		h.logger.Error("record finished game failed", zap.String("player_id", s.playerID), zap.Error(err))
	}
	if err := h.sessions.DeleteSession(ctx, s.playerID); err != nil {
		h.logger.Warn("delete session failed", zap.String("player_id", s.playerID), zap.Error(err))
	}

	won := state.GameStatus == entities.GameStatusWon
	h.send(s, dto.MsgGameOver, dto.GameOverData{
		Status:    state.GameStatus,
		Score:     state.Score,
		HighScore: max(state.HighScore, profile.HighScore),
		Share:     game.ShareText(state.Score, won, h.ShareURL),
		Profile:   profile,
	})
	h.logger.Info("game over",
		zap.String("player_id", s.playerID),
		zap.String("status", string(state.GameStatus)),
		zap.Int("score", state.Score),
	)
}
