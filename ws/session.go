package ws

import (
	"errors"
	"sync"

	"go-scoundrel/dto"
	"go-scoundrel/entities"
	"go-scoundrel/game"

	"github.com/gorilla/websocket"
)

var errNoConnection = errors.New("no connection")

// Session 一个玩家的对局。mu 保证动作逐个结算，writeMu 保护连接写入
type Session struct {
	playerID string

	mu      sync.Mutex
	engine  *game.Engine
	started bool

	writeMu sync.Mutex
	conn    *websocket.Conn
}

func newSession(playerID string, engine *game.Engine, started bool) *Session {
	return &Session{playerID: playerID, engine: engine, started: started}
}

func (s *Session) snapshot() (entities.GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State(), s.started
}

func (s *Session) setConn(conn *websocket.Conn) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn = conn
}

// clearConn 只清理仍是当前连接的情况，避免覆盖重连后的新连接
func (s *Session) clearConn(conn *websocket.Conn) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.conn == conn {
		s.conn = nil
	}
}

func (s *Session) idle() bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn == nil
}

func (s *Session) send(msg dto.ServerMessage) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.conn == nil {
		return errNoConnection
	}
	return s.conn.WriteJSON(msg)
}
