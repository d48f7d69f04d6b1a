package event

import (
	"encoding/json"
	"fmt"

	"spark/pkg/logger"
	"spark/pkg/mq"
	eventtypes "spark/pkg/types/eventtype"
)

type Consumer struct {
	mqClient     *mq.RabbitMQ
	eventHandler *EventHandler
}

func NewConsumer(mqClient *mq.RabbitMQ, pusher Pusher) *Consumer {
	return &Consumer{
		mqClient:     mqClient,
		eventHandler: NewEventHandler(pusher),
	}
}

func (c *Consumer) Handlers() mq.EventHandlerMap {
	return mq.EventHandlerMap{
		eventtypes.EventTypeLikeCreated:  c.eventHandler.HandleLikeEvent,
		eventtypes.EventTypeMatchCreated: c.eventHandler.HandleMatchEvent,
		// 싫어요는 알리지 않음
		eventtypes.EventTypeDislikeCreated: func(json.RawMessage) {},
	}
}

func (c *Consumer) StartListening() error {
	// Exchange 및 Queue 설정
	if err := c.mqClient.DeclareExchange(mq.ExchangeMatchEvents, mq.ExchangeTypeFanout); err != nil {
		return fmt.Errorf("declare exchange %s: %w", mq.ExchangeMatchEvents, err)
	}

	// Queue 생성 및 바인딩
	queue, err := c.mqClient.DeclareQueue(mq.QueuePushMatchEvents, mq.ExchangeMatchEvents, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", mq.QueuePushMatchEvents, err)
	}

	// 메시지 소비 시작
	if err := c.mqClient.ConsumeMessages(queue.Name, c.Handlers()); err != nil {
		return fmt.Errorf("consume %s: %w", queue.Name, err)
	}

	logger.Logger.Info().Msg("✅ RabbitMQ Consumer Listening...")
	return nil
}
