package event

import (
	"fmt"

	"spark/pkg/logger"
	"spark/pkg/mq"
	eventtypes "spark/pkg/types/eventtype"
)

type Consumer struct {
	mqClient     *mq.RabbitMQ
	eventHandler *EventHandler
}

func NewConsumer(mqClient *mq.RabbitMQ, service UserCleaner) *Consumer {
	return &Consumer{
		mqClient:     mqClient,
		eventHandler: NewEventHandler(service),
	}
}

// Handlers는 이벤트 타입별 핸들러 맵입니다
func (c *Consumer) Handlers() mq.EventHandlerMap {
	return mq.EventHandlerMap{
		eventtypes.EventTypeUserDeleted: c.eventHandler.HandleUserDeletedEvent,
	}
}

func (c *Consumer) StartListening() error {
	// Exchange 및 Queue 설정
	if err := c.mqClient.DeclareExchange(mq.ExchangeUserEvents, mq.ExchangeTypeFanout); err != nil {
		return fmt.Errorf("declare exchange %s: %w", mq.ExchangeUserEvents, err)
	}

	// Queue 생성 및 바인딩
	queue, err := c.mqClient.DeclareQueue(mq.QueueMatchUserEvents, mq.ExchangeUserEvents, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", mq.QueueMatchUserEvents, err)
	}

	// 메시지 소비 시작
	if err := c.mqClient.ConsumeMessages(queue.Name, c.Handlers()); err != nil {
		return fmt.Errorf("consume %s: %w", queue.Name, err)
	}

	logger.Logger.Info().Str("queue", queue.Name).Msg("✅ RabbitMQ Consumer Listening...")
	return nil
}
