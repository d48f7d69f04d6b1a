package service

import (
	"encoding/json"
	"sync"

	"spark/pkg/logger"
	"spark/pkg/types/stype"
)

// Conn은 웹소켓 연결 중 알림 전송에 필요한 부분입니다 (*websocket.Conn)
type Conn interface {
	WriteJSON(v interface{}) error
}

type client struct {
	conn Conn
	// 웹소켓은 동시 쓰기를 허용하지 않음
	mu sync.Mutex
}

func (c *client) write(msg stype.WebSocketMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Notifier는 접속 중인 사용자에게 매칭 알림을 보냅니다
type Notifier struct {
	clients sync.Map // userID -> *client
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Register는 사용자 연결을 등록합니다. 기존 연결은 대체됩니다
func (n *Notifier) Register(userID int, conn Conn) {
	n.clients.Store(userID, &client{conn: conn})
}

// Unregister는 같은 연결일 때만 제거합니다
func (n *Notifier) Unregister(userID int, conn Conn) {
	if v, ok := n.clients.Load(userID); ok && v.(*client).conn == conn {
		n.clients.Delete(userID)
	}
}

func (n *Notifier) Connected(userID int) bool {
	_, ok := n.clients.Load(userID)
	return ok
}

// Write는 userID 의 연결에 메시지를 씁니다
func (n *Notifier) Write(userID int, msg stype.WebSocketMessage) error {
	v, ok := n.clients.Load(userID)
	if !ok {
		return nil
	}
	return v.(*client).write(msg)
}

// Notify는 접속 중인 사용자에게만 보냅니다. 실패해도 다른 사용자 전송은 계속합니다
func (n *Notifier) Notify(userID int, kind string, payload interface{}) bool {
	v, ok := n.clients.Load(userID)
	if !ok {
		return false
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to marshal notice")
		return false
	}

	msg := stype.WebSocketMessage{Kind: kind, Payload: json.RawMessage(body)}
	if err := v.(*client).write(msg); err != nil {
		logger.Logger.Warn().Err(err).Int("user_id", userID).Msg("Failed to notify user")
		return false
	}
	return true
}
