package event

import (
	"encoding/json"

	"spark/pkg/logger"
	"spark/pkg/mq"
	eventtypes "spark/pkg/types/eventtype"
)

type Emitter struct {
	publisher mq.Publisher
}

func NewEmitter(publisher mq.Publisher) *Emitter {
	return &Emitter{publisher: publisher}
}

// PublishUserEvent는 user_events fanout exchange 로 이벤트를 발행합니다
func (e *Emitter) PublishUserEvent(payload eventtypes.EventPayload) error {
	eventBytes, err := json.Marshal(payload)
	if err != nil {
		logger.Logger.Error().Err(err).Str("event_type", payload.EventType).Msg("❌ Failed to marshal user event")
		return err
	}

	err = e.publisher.PublishMessage(
		mq.ExchangeUserEvents, // Exchange Name (Fanout 타입)
		"",                    // Routing Key (Fanout은 필요 없음)
		eventBytes,
	)
	if err != nil {
		logger.Logger.Error().Err(err).Str("event_type", payload.EventType).Msg("❌ Failed to publish user event")
		return err
	}

	logger.Logger.Debug().Str("event_type", payload.EventType).Msg("User event published")
	return nil
}
