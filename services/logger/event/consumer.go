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

func NewConsumer(mqClient *mq.RabbitMQ, logRepo LogWriter) *Consumer {
	return &Consumer{
		mqClient:     mqClient,
		eventHandler: NewEventHandler(logRepo),
	}
}

func (c *Consumer) Handlers() mq.EventHandlerMap {
	return mq.EventHandlerMap{
		eventtypes.EventTypeLog: c.eventHandler.HandleLogEvent,
	}
}

func (c *Consumer) StartListening() error {
	// Exchange 설정
	if err := c.mqClient.DeclareExchange(mq.ExchangeLog, mq.ExchangeTypeFanout); err != nil {
		return fmt.Errorf("declare exchange %s: %w", mq.ExchangeLog, err)
	}

	// Queue 생성 및 바인딩
	queue, err := c.mqClient.DeclareQueue(mq.QueueLog, mq.ExchangeLog, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", mq.QueueLog, err)
	}

	// 메시지 소비 시작
	if err := c.mqClient.ConsumeMessages(queue.Name, c.Handlers()); err != nil {
		return fmt.Errorf("consume %s: %w", queue.Name, err)
	}

	logger.Logger.Info().Msg("✅ Logger Service Consumer Listening...")
	return nil
}
