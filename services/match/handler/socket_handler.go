package handler

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"spark/pkg/logger"
	"spark/pkg/middleware"
	"spark/pkg/types/stype"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const socketIdleTimeout = 60 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleMatchSocket은 사용자 연결을 알림 대상으로 등록하고, 연결이 끊길 때까지 ping 에 응답합니다
func (h *MatchHandler) HandleMatchSocket(c echo.Context) error {
	userID := middleware.UserID(c)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Logger.Warn().Err(err).Int("user_id", userID).Msg("Failed to upgrade connection")
		return nil
	}
	defer conn.Close()

	notifier := h.matchService.Notifier()
	notifier.Register(userID, conn)
	defer notifier.Unregister(userID, conn)

	logger.Logger.Debug().Int("user_id", userID).Msg("match socket connected")

	for {
		_ = conn.SetReadDeadline(time.Now().Add(socketIdleTimeout))

		_, raw, err := conn.ReadMessage()
		if err != nil {
			switch {
			case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure):
				logger.Logger.Warn().Err(err).Int("user_id", userID).Msg("Unexpected WebSocket close error")
			case isTimeoutError(err):
				logger.Logger.Debug().Int("user_id", userID).Msg("WebSocket idle timeout")
			default:
				logger.Logger.Debug().Int("user_id", userID).Msg("WebSocket connection closed by client")
			}
			return nil
		}

		// 알 수 없는 메시지는 무시
		var msg stype.WebSocketMessage
		if json.Unmarshal(raw, &msg) != nil {
			continue
		}

		if msg.Kind == stype.MessageKindPing {
			pong := stype.WebSocketMessage{Kind: stype.MessageKindPong, Payload: json.RawMessage(`{}`)}
			if err := notifier.Write(userID, pong); err != nil {
				return nil
			}
		}
	}
}

// 타임아웃 에러 확인 함수
func isTimeoutError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
