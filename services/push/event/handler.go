package event

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"spark/pkg/logger"
	eventtypes "spark/pkg/types/eventtype"
	"spark/services/push/onesignal"
)

// Pusher는 푸시 발송 클라이언트입니다 (onesignal.Client)
type Pusher interface {
	Push(ctx context.Context, payload onesignal.Payload) error
}

type EventHandler struct {
	pusher Pusher
}

func NewEventHandler(pusher Pusher) *EventHandler {
	return &EventHandler{pusher: pusher}
}

// HandleLikeEvent는 매칭으로 이어지지 않은 좋아요를 받은 사용자에게 알립니다.
// 매칭된 경우는 match.created 에서 보냅니다.
func (h *EventHandler) HandleLikeEvent(body json.RawMessage) {
	var eventData eventtypes.LikeEvent
	if err := json.Unmarshal(body, &eventData); err != nil {
		logger.Logger.Warn().Err(err).Msg("❌ Failed to unmarshal like event")
		return
	}
	if eventData.Matched {
		return
	}

	h.push(onesignal.Payload{
		PushUserList: []int{eventData.ToUserID},
		Header:       "New Like",
		Content:      "Someone liked your profile",
		Url:          "spark://likes/received",
	})
}

func (h *EventHandler) HandleMatchEvent(body json.RawMessage) {
	var eventData eventtypes.MatchEvent
	if err := json.Unmarshal(body, &eventData); err != nil {
		logger.Logger.Warn().Err(err).Msg("❌ Failed to unmarshal match event")
		return
	}

	h.push(onesignal.Payload{
		PushUserList: eventData.UserIDs,
		Header:       "It's a match!",
		Content:      "You have a new match",
		Url:          "spark://matches",
	})
}

func (h *EventHandler) push(payload onesignal.Payload) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := h.pusher.Push(ctx, payload)
	if errors.Is(err, onesignal.ErrDisabled) {
		logger.Logger.Debug().Str("header", payload.Header).Msg("push skipped")
		return
	}
	if err != nil {
		logger.Warn(logger.LogEventWarning, "push failed", map[string]interface{}{
			"header": payload.Header,
			"users":  payload.PushUserList,
			"error":  err.Error(),
		})
	}
}
