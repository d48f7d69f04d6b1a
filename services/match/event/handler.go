package event

import (
	"context"
	"encoding/json"
	"time"

	"spark/pkg/logger"
	eventtypes "spark/pkg/types/eventtype"
)

// UserCleaner는 삭제된 사용자의 좋아요 간선을 정리합니다 (service.MatchService)
type UserCleaner interface {
	HandleUserDeleted(ctx context.Context, userID int) (int64, error)
}

type EventHandler struct {
	service UserCleaner
}

func NewEventHandler(service UserCleaner) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) HandleUserDeletedEvent(body json.RawMessage) {
	var event eventtypes.UserDeletedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Logger.Warn().Err(err).Msg("failed to unmarshal user.deleted event")
		return
	}
	if event.UserID <= 0 {
		logger.Logger.Warn().Int("user_id", event.UserID).Msg("user.deleted event without user id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := h.service.HandleUserDeleted(ctx, event.UserID); err != nil {
		logger.Error(logger.LogEventError, "failed to clean up likes for deleted user", map[string]interface{}{
			"user_id": event.UserID,
			"error":   err.Error(),
		})
	}
}
