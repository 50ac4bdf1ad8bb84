package ws

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"go-scoundrel/dto"
	"go-scoundrel/game"
	"go-scoundrel/middleware"
	"go-scoundrel/repository"
	"go-scoundrel/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub 管理所有玩家的对局会话，一个玩家同一时间只有一个会话
type Hub struct {
	auth     middleware.Authenticator
	profiles *service.ProfileService
	sessions repository.SessionStore
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	active map[string]*Session

	// ShareURL is appended to the share text in game_over messages.
	ShareURL string
	NewRand  func() game.RandomSource
}

func NewHub(auth middleware.Authenticator, profiles *service.ProfileService, sessions repository.SessionStore, logger *zap.Logger, allowedOrigins []string) *Hub {
	return &Hub{
		auth:     auth,
		profiles: profiles,
		sessions: sessions,
		logger:   logger,
		upgrader: websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)},
		active:   make(map[string]*Session),
		NewRand:  game.NewRandom,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

// HandleWebSocket WebSocket 主入口（处理每个连接）
func (h *Hub) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	playerID, err := h.auth.Authenticate(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未授权"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	session := h.attach(ctx, playerID, conn)
	defer h.detach(playerID, conn)

	h.sendInit(ctx, session)
	h.logger.Info("player connected", zap.String("player_id", playerID))

	h.listen(ctx, session, conn)
}

// 持续读取客户端消息，直到连接断开
func (h *Hub) listen(ctx context.Context, session *Session, conn *websocket.Conn) {
	for {
		var msg dto.ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("read message failed", zap.String("player_id", session.playerID), zap.Error(err))
			}
			return
		}
		h.handleMessage(ctx, session, msg)
	}
}

// attach 找到玩家已有会话（断线重连）或新建一个
func (h *Hub) attach(ctx context.Context, playerID string, conn *websocket.Conn) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.active[playerID]; ok {
		s.setConn(conn)
		h.logger.Info("player reconnected", zap.String("player_id", playerID))
		return s
	}

	s := h.restore(ctx, playerID)
	s.setConn(conn)
	h.active[playerID] = s
	return s
}

func (h *Hub) restore(ctx context.Context, playerID string) *Session {
	profile, err := h.profiles.Profile(ctx, playerID)
	if err != nil {
		h.logger.Warn("load profile failed", zap.String("player_id", playerID), zap.Error(err))
	}

	state, ok, err := h.sessions.LoadSession(ctx, playerID)
	if err != nil {
		h.logger.Warn("load session failed", zap.String("player_id", playerID), zap.Error(err))
	}
	if !ok || err != nil || state.IsOver() {
		return newSession(playerID, game.NewEngine(profile.HighScore), false)
	}

	engine := game.RestoreEngine(state)
	engine.Dispatch(game.SetHighScore{Score: max(state.HighScore, profile.HighScore)})
	return newSession(playerID, engine, true)
}

func (h *Hub) detach(playerID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.active[playerID]; ok {
		s.clearConn(conn)
	}
	h.logger.Info("player disconnected", zap.String("player_id", playerID))
}

func (h *Hub) sendInit(ctx context.Context, s *Session) {
	profile, err := h.profiles.Profile(ctx, s.playerID)
	if err != nil {
		h.logger.Warn("load profile failed", zap.String("player_id", s.playerID), zap.Error(err))
	}
	data := dto.InitData{
		PlayerID:  s.playerID,
		Profile:   profile,
		DailySeed: h.profiles.Today(),
	}
	if state, started := s.snapshot(); started {
		data.State = &state
	}
	h.send(s, dto.MsgInit, data)
}

func (h *Hub) send(s *Session, msgType string, data interface{}) {
	if err := s.send(dto.ServerMessage{Type: msgType, Data: data}); err != nil {
		h.logger.Warn("send message failed",
			zap.String("player_id", s.playerID),
			zap.String("type", msgType),
			zap.Error(err),
		)
	}
}

func (h *Hub) sendError(s *Session, message string) {
	h.send(s, dto.MsgError, dto.ErrorData{Message: message})
}

// ActiveSessions is the number of sessions held in memory.
func (h *Hub) ActiveSessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.active)
}
