package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-scoundrel/dto"
	"go-scoundrel/entities"
	"go-scoundrel/game"
	"go-scoundrel/repository"
	"go-scoundrel/service"
	"go-scoundrel/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	exprand "golang.org/x/exp/rand"
)

var today = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

type fixture struct {
	server   *httptest.Server
	hub      *Hub
	players  *service.PlayerService
	profiles *repository.MemoryProfiles
	sessions *repository.MemorySessions
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	profileStore := repository.NewMemoryProfiles()
	sessions := repository.NewMemorySessions()
	profiles := service.NewProfileService(profileStore, zap.NewNop(), time.UTC)
	profiles.Now = func() time.Time { return today }
	players := service.NewPlayerService(utils.NewTokenIssuer("secret", time.Hour))

	hub := NewHub(players, profiles, sessions, zap.NewNop(), nil)
	hub.NewRand = func() game.RandomSource { return exprand.New(exprand.NewSource(7)) }
	hub.ShareURL = "https://scoundrel.example"

	r := gin.New()
	r.GET("/ws", hub.HandleWebSocket)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &fixture{server: server, hub: hub, players: players, profiles: profileStore, sessions: sessions}
}

func (f *fixture) login(t *testing.T) dto.LoginResponse {
	t.Helper()
	resp, err := f.players.Login(dto.LoginRequest{})
	require.NoError(t, err)
	return resp
}

func (f *fixture) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// inbound 覆盖所有服务端消息的字段；dailySeed 在外层按字符串读取
type inbound struct {
	Type string `json:"type"`
	Data struct {
		entities.GameState
		PlayerID  string                  `json:"playerId"`
		DailySeed string                  `json:"dailySeed"`
		State     *entities.GameState     `json:"state"`
		Message   string                  `json:"message"`
		Status    entities.GameStatus     `json:"status"`
		Share     string                  `json:"share"`
		Profile   *entities.PlayerProfile `json:"profile"`
	} `json:"data"`
}

func read(t *testing.T, conn *websocket.Conn) inbound {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg inbound
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func send(t *testing.T, conn *websocket.Conn, msgType string, payload map[string]interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(dto.ClientMessage{Type: msgType, Payload: payload}))
}

func TestHub_RejectsBadToken(t *testing.T) {
	f := newFixture(t)
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws?token=nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHub_InitAndErrors(t *testing.T) {
	f := newFixture(t)
	login := f.login(t)
	conn := f.dial(t, login.AccessToken)

	hello := read(t, conn)
	assert.Equal(t, dto.MsgInit, hello.Type)
	assert.Equal(t, login.PlayerID, hello.Data.PlayerID)
	assert.Equal(t, "2026-10-16", hello.Data.DailySeed)
	assert.Nil(t, hello.Data.State)

	send(t, conn, dto.MsgDrawRoom, nil)
	msg := read(t, conn)
	assert.Equal(t, dto.MsgError, msg.Type)
	assert.Equal(t, errNoGame.Error(), msg.Data.Message)

	send(t, conn, "teleport", nil)
	msg = read(t, conn)
	assert.Equal(t, dto.MsgError, msg.Type)

	send(t, conn, dto.MsgStartGame, nil)
	msg = read(t, conn)
	require.Equal(t, dto.MsgState, msg.Type)
	assert.Len(t, msg.Data.Room, game.RoomSize)
	assert.Len(t, msg.Data.Deck, game.DeckSize-game.RoomSize)

	send(t, conn, dto.MsgFight, map[string]interface{}{"cardId": "hearts-A"})
	msg = read(t, conn)
	assert.Equal(t, dto.MsgError, msg.Type)
	assert.Equal(t, errCardNotInRoom.Error(), msg.Data.Message)
}

// 简单策略：房间只剩一张且牌堆还有牌时进下一个房间，否则处理第一张牌
func nextMove(state entities.GameState) (string, map[string]interface{}) {
	if len(state.Room) <= 1 && len(state.Deck) > 0 {
		return dto.MsgDrawRoom, nil
	}
	card := state.Room[0]
	switch {
	case card.IsPotion():
		return dto.MsgDrink, map[string]interface{}{"cardId": card.ID}
	case card.IsWeapon():
		return dto.MsgEquip, map[string]interface{}{"cardId": card.ID}
	default:
		useWeapon := state.Weapon != nil && game.CanUseWeapon(card.Value, state.LastMonsterSlain)
		return dto.MsgFight, map[string]interface{}{"cardId": card.ID, "useWeapon": useWeapon}
	}
}

func TestHub_DailyPlaythrough(t *testing.T) {
	f := newFixture(t)
	login := f.login(t)
	conn := f.dial(t, login.AccessToken)
	read(t, conn)

	send(t, conn, dto.MsgStartDaily, nil)
	msg := read(t, conn)
	require.Equal(t, dto.MsgState, msg.Type)
	require.True(t, msg.Data.IsDailyChallenge)
	assert.Equal(t, "2026-10-16", msg.Data.DailySeed)

	state := msg.Data.GameState
	for steps := 0; !state.IsOver(); steps++ {
		require.Less(t, steps, 200, "game did not finish")
		msgType, payload := nextMove(state)
		send(t, conn, msgType, payload)
		msg = read(t, conn)
		require.Equal(t, dto.MsgState, msg.Type, msg.Data.Message)
		state = msg.Data.GameState
	}

	over := read(t, conn)
	require.Equal(t, dto.MsgGameOver, over.Type)
	assert.Equal(t, state.GameStatus, over.Data.Status)
	assert.Equal(t, state.Score, over.Data.Score)
	assert.True(t, strings.HasSuffix(over.Data.Share, "https://scoundrel.example"))
	require.NotNil(t, over.Data.Profile)
	assert.Equal(t, 1, over.Data.Profile.Statistics.GamesPlayed)
	assert.Equal(t, "2026-10-16", over.Data.Profile.DailyCompleted)
	assert.Equal(t, 1, over.Data.Profile.DailyStreak)

	_, ok, err := f.sessions.LoadSession(context.Background(), login.PlayerID)
	require.NoError(t, err)
	assert.False(t, ok, "finished games leave no snapshot")

	send(t, conn, dto.MsgStartDaily, nil)
	msg = read(t, conn)
	assert.Equal(t, dto.MsgError, msg.Type)
	assert.Equal(t, errDailyCompleted.Error(), msg.Data.Message)

	send(t, conn, dto.MsgStartGame, nil)
	msg = read(t, conn)
	assert.Equal(t, dto.MsgState, msg.Type)
	assert.False(t, msg.Data.IsDailyChallenge)
}

func TestHub_ResumesAfterReconnect(t *testing.T) {
	f := newFixture(t)
	login := f.login(t)
	conn := f.dial(t, login.AccessToken)
	read(t, conn)

	send(t, conn, dto.MsgStartGame, nil)
	started := read(t, conn).Data.GameState
	require.NoError(t, conn.Close())

	// 等待服务端处理断线
	require.Eventually(t, func() bool {
		f.hub.mu.Lock()
		defer f.hub.mu.Unlock()
		s, ok := f.hub.active[login.PlayerID]
		return ok && s.idle()
	}, 2*time.Second, 10*time.Millisecond)

	conn = f.dial(t, login.AccessToken)
	hello := read(t, conn)
	require.NotNil(t, hello.Data.State)
	assert.Equal(t, started.Room, hello.Data.State.Room)

	// 清理后从快照恢复
	conn.Close()
	require.Eventually(t, func() bool { return f.hub.clearIdleSessions() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, f.hub.ActiveSessions())

	require.NoError(t, f.profiles.SaveProfile(context.Background(), entities.PlayerProfile{PlayerID: login.PlayerID, HighScore: 29}))
	conn = f.dial(t, login.AccessToken)
	hello = read(t, conn)
	require.NotNil(t, hello.Data.State)
	assert.Equal(t, started.Deck, hello.Data.State.Deck)
	assert.Equal(t, 29, hello.Data.State.HighScore)
}

func TestDurationUntilNext(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2026, 10, 16, h, m, 0, 0, time.UTC) }
	assert.Equal(t, 2*time.Hour, durationUntilNext(at(2, 0), 4))
	assert.Equal(t, 23*time.Hour+30*time.Minute, durationUntilNext(at(4, 30), 4))
	assert.Equal(t, 24*time.Hour, durationUntilNext(at(4, 0), 4))
}

func TestDecodePayload(t *testing.T) {
	var p dto.FightPayload
	require.NoError(t, decodePayload(map[string]interface{}{"cardId": "spades-9", "useWeapon": "true"}, &p))
	assert.Equal(t, dto.FightPayload{CardID: "spades-9", UseWeapon: true}, p)

	require.NoError(t, decodePayload(nil, &p))
	assert.Error(t, decodePayload(map[string]interface{}{"cardId": map[string]interface{}{"id": 1}}, &p))
}
