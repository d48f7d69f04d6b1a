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

// PublishMatchEvent는 match_events fanout exchange 로 발행합니다
func (e *Emitter) PublishMatchEvent(payload eventtypes.EventPayload) error {
	eventBytes, err := json.Marshal(payload)
	if err != nil {
		logger.Logger.Error().Err(err).Str("event_type", payload.EventType).Msg("❌ Failed to marshal match event")
		return err
	}

	err = e.publisher.PublishMessage(
		mq.ExchangeMatchEvents, // Exchange Name (Fanout 타입)
		payload.EventType,      // Routing Key (이벤트 타입)
		eventBytes,
	)
	if err != nil {
		logger.Logger.Error().Err(err).Str("event_type", payload.EventType).Msg("❌ Failed to publish match event")
		return err
	}

	logger.Logger.Debug().Str("event_type", payload.EventType).Msg("Match event published")
	return nil
}
