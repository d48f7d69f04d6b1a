package event

import (
	"context"
	"encoding/json"
	"time"

	"spark/pkg/logger"
)

// LogWriter는 로그 저장소입니다 (repo.LogRepository)
type LogWriter interface {
	InsertLog(ctx context.Context, log logger.BaseLog) error
}

type EventHandler struct {
	logRepo LogWriter
}

func NewEventHandler(logRepo LogWriter) *EventHandler {
	return &EventHandler{
		logRepo: logRepo,
	}
}

// HandleLogEvent는 로그 이벤트를 처리합니다
func (e *EventHandler) HandleLogEvent(payload json.RawMessage) {
	var baseLog logger.BaseLog
	if err := json.Unmarshal(payload, &baseLog); err != nil {
		logger.Logger.Warn().Err(err).Msg("❌ Failed to unmarshal log event")
		return
	}
	if baseLog.Timestamp.IsZero() {
		baseLog.Timestamp = time.Now().UTC()
	}

	// MongoDB에 로그 저장
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.logRepo.InsertLog(ctx, baseLog); err != nil {
		logger.Logger.Error().Err(err).Msg("❌ Failed to insert log")
		return
	}

	logger.Logger.Debug().Str("message", baseLog.Message).Msg("✅ Log saved")
}
