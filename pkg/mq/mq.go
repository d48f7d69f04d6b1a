package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	eventtypes "spark/pkg/types/eventtype"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// Publisher는 메시지 발행만 필요한 컴포넌트(emitter, logger)가 사용합니다
type Publisher interface {
	PublishMessage(exchange, routingKey string, body []byte) error
}

// EventHandlerMap은 event_type 별 핸들러 목록입니다
type EventHandlerMap map[string]func(json.RawMessage)

type RabbitMQ struct {
	Conn    *amqp.Connection
	channel *amqp.Channel
	// amqp 채널은 동시 publish에 안전하지 않음
	mu sync.Mutex
}

// ConnectToRabbitMQ: RabbitMQ 연결 설정
func ConnectToRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to connect to RabbitMQ")
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to open RabbitMQ channel")
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{Conn: conn, channel: ch}, nil
}

func (mq *RabbitMQ) Close() error {
	if err := mq.channel.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close RabbitMQ channel")
	}
	return mq.Conn.Close()
}

// DeclareExchange: Exchange 생성
func (mq *RabbitMQ) DeclareExchange(name, exchangeType string) error {
	return mq.channel.ExchangeDeclare(
		name,         // exchange name
		exchangeType, // type: topic or fanout
		true,         // durable
		false,        // autoDelete
		false,        // internal
		false,        // noWait
		nil,          // arguments
	)
}

// DeclareQueue: Queue 생성 및 바인딩. fanout은 routingKeys 없이 한 번 바인딩
func (mq *RabbitMQ) DeclareQueue(queueName, exchangeName string, routingKeys []string) (amqp.Queue, error) {
	queue, err := mq.channel.QueueDeclare(
		queueName, // queue name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // arguments
	)
	if err != nil {
		return queue, err
	}

	if len(routingKeys) == 0 {
		routingKeys = []string{""}
	}

	for _, key := range routingKeys {
		err = mq.channel.QueueBind(
			queue.Name,   // queue name
			key,          // routing key
			exchangeName, // exchange name
			false,        // noWait
			nil,          // arguments
		)
		if err != nil {
			return queue, fmt.Errorf("bind %s to %s (%q): %w", queue.Name, exchangeName, key, err)
		}
	}

	return queue, nil
}

// PublishMessage: 메시지 발행
func (mq *RabbitMQ) PublishMessage(exchange, routingKey string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	mq.mu.Lock()
	defer mq.mu.Unlock()

	return mq.channel.PublishWithContext(ctx,
		exchange,   // exchange name
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// ConsumeMessages: 메시지 소비 후 event_type 으로 핸들러 분기
func (mq *RabbitMQ) ConsumeMessages(queueName string, handlers EventHandlerMap) error {
	msgs, err := mq.channel.Consume(
		queueName, // queue name
		"",        // consumer
		true,      // autoAck
		false,     // exclusive
		false,     // noLocal
		false,     // noWait
		nil,       // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			if err := Dispatch(msg.Body, handlers); err != nil {
				log.Warn().Err(err).Str("queue", queueName).Msg("dropping message")
			}
		}
	}()
	return nil
}

// Dispatch는 EventPayload를 디코딩해 등록된 핸들러를 호출합니다.
// 알 수 없는 이벤트 타입은 에러로 돌려주고 버립니다.
func Dispatch(body []byte, handlers EventHandlerMap) error {
	var payload eventtypes.EventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("unmarshal event payload: %w", err)
	}

	handler, ok := handlers[payload.EventType]
	if !ok {
		return fmt.Errorf("no handler for event type %q", payload.EventType)
	}

	handler(payload.Data)
	return nil
}
