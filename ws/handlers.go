package ws

import (
	"context"
	"errors"
	"fmt"

	"go-scoundrel/dto"
	"go-scoundrel/entities"
	"go-scoundrel/game"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

var (
	errUnknownMessage = errors.New("未知的消息类型")
	errCardNotInRoom  = errors.New("这张牌不在当前房间")
	errDailyCompleted = errors.New("今日挑战已完成")
	errNoGame         = errors.New("还没有开始游戏")
)

type messageContext struct {
	ctx      context.Context
	playerID string
	state    entities.GameState
	payload  map[string]interface{}
}

// messageHandler 把一条客户端消息翻译成一个引擎动作
type messageHandler func(h *Hub, m messageContext) (game.Action, error)

var messageHandlers = map[string]messageHandler{
	dto.MsgStartGame:  handleStartGame,
	dto.MsgStartDaily: handleStartDaily,
	dto.MsgDrawRoom:   handleDrawRoom,
	dto.MsgFight:      handleFight,
	dto.MsgDrink:      handleDrink,
	dto.MsgEquip:      handleEquip,
	dto.MsgAvoid:      handleAvoid,
}

// handleMessage 在会话锁内完成一次完整的状态转换
func (h *Hub) handleMessage(ctx context.Context, s *Session, msg dto.ClientMessage) {
	handler, ok := messageHandlers[msg.Type]
	if !ok {
		h.sendError(s, fmt.Sprintf("%s: %s", errUnknownMessage, msg.Type))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.engine.State()
	starting := msg.Type == dto.MsgStartGame || msg.Type == dto.MsgStartDaily
	if !s.started && !starting {
		h.sendError(s, errNoGame.Error())
		return
	}

	action, err := handler(h, messageContext{ctx: ctx, playerID: s.playerID, state: prev, payload: msg.Payload})
	if err != nil {
		h.sendError(s, err.Error())
		return
	}

	next := s.engine.Dispatch(action)
	if starting {
		s.started = true
	}
	h.send(s, dto.MsgState, next)

	if !prev.IsOver() && next.IsOver() && !starting {
		h.handleGameEnd(ctx, s, next)
		return
	}
	if err := h.sessions.SaveSession(ctx, s.playerID, next); err != nil {
		h.logger.Warn("save session failed", zap.String("player_id", s.playerID), zap.Error(err))
	}
}

func handleStartGame(h *Hub, _ messageContext) (game.Action, error) {
	return game.StartGame{Rand: h.NewRand()}, nil
}

// 每日挑战每人每天一次；档案读取失败时放行
func handleStartDaily(h *Hub, m messageContext) (game.Action, error) {
	seed := h.profiles.Today()
	ok, err := h.profiles.CanStartDaily(m.ctx, m.playerID, seed)
	if err != nil {
		h.logger.Warn("daily completion check failed", zap.String("player_id", m.playerID), zap.Error(err))
		ok = true
	}
	if !ok {
		return nil, errDailyCompleted
	}
	return game.StartDailyChallenge{Seed: seed}, nil
}

func handleDrawRoom(_ *Hub, _ messageContext) (game.Action, error) {
	return game.DrawRoom{}, nil
}

func handleAvoid(_ *Hub, _ messageContext) (game.Action, error) {
	return game.AvoidRoom{}, nil
}

func handleFight(_ *Hub, m messageContext) (game.Action, error) {
	var p dto.FightPayload
	if err := decodePayload(m.payload, &p); err != nil {
		return nil, err
	}
	card, ok := m.state.RoomCard(p.CardID)
	if !ok {
		return nil, errCardNotInRoom
	}
	return game.FightMonster{Card: card, UseWeapon: p.UseWeapon}, nil
}

func handleDrink(_ *Hub, m messageContext) (game.Action, error) {
	card, err := roomCard(m.state, m.payload)
	if err != nil {
		return nil, err
	}
	return game.DrinkPotion{Card: card}, nil
}

func handleEquip(_ *Hub, m messageContext) (game.Action, error) {
	card, err := roomCard(m.state, m.payload)
	if err != nil {
		return nil, err
	}
	return game.EquipWeapon{Card: card}, nil
}

func roomCard(state entities.GameState, payload map[string]interface{}) (entities.Card, error) {
	var p dto.CardPayload
	if err := decodePayload(payload, &p); err != nil {
		return entities.Card{}, err
	}
	card, ok := state.RoomCard(p.CardID)
	if !ok {
		return entities.Card{}, errCardNotInRoom
	}
	return card, nil
}

// decodePayload 把 payload map 解码到结构体，允许 "true" / "1" 这类字符串值
func decodePayload(payload map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("消息格式错误: %w", err)
	}
	return nil
}
