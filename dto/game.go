package dto

import "go-scoundrel/entities"

// 客户端 -> 服务端 消息类型
const (
	MsgStartGame  = "start_game"
	MsgStartDaily = "start_daily"
	MsgDrawRoom   = "draw_room"
	MsgFight      = "fight"
	MsgDrink      = "drink"
	MsgEquip      = "equip"
	MsgAvoid      = "avoid"
)

// 服务端 -> 客户端 消息类型
const (
	MsgInit     = "init"
	MsgState    = "state"
	MsgGameOver = "game_over"
	MsgError    = "error"
)

type ClientMessage struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload"`
}

type CardPayload struct {
	CardID string `mapstructure:"cardId"`
}

type FightPayload struct {
	CardID    string `mapstructure:"cardId"`
	UseWeapon bool   `mapstructure:"useWeapon"`
}

type ServerMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type InitData struct {
	PlayerID  string                 `json:"playerId"`
	State     *entities.GameState    `json:"state,omitempty"`
	Profile   entities.PlayerProfile `json:"profile"`
	DailySeed string                 `json:"dailySeed"`
}

type GameOverData struct {
	Status    entities.GameStatus    `json:"status"`
	Score     int                    `json:"score"`
	HighScore int                    `json:"highScore"`
	Share     string                 `json:"share"`
	Profile   entities.PlayerProfile `json:"profile"`
}

type ErrorData struct {
	Message string `json:"message"`
}
