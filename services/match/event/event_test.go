package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"spark/pkg/mq"
	eventtypes "spark/pkg/types/eventtype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	exchange   string
	routingKey string
	body       []byte
	err        error
}

func (p *recordingPublisher) PublishMessage(exchange, routingKey string, body []byte) error {
	p.exchange = exchange
	p.routingKey = routingKey
	p.body = body
	return p.err
}

type fakeCleaner struct {
	deleted []int
	err     error
}

func (f *fakeCleaner) HandleUserDeleted(_ context.Context, userID int) (int64, error) {
	f.deleted = append(f.deleted, userID)
	return 1, f.err
}

func TestPublishMatchEvent(t *testing.T) {
	pub := &recordingPublisher{}
	err := NewEmitter(pub).PublishMatchEvent(eventtypes.EventPayload{
		EventID:   "e-1",
		EventType: eventtypes.EventTypeMatchCreated,
		Data:      json.RawMessage(`{"match_id":"m"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, mq.ExchangeMatchEvents, pub.exchange)
	assert.Equal(t, eventtypes.EventTypeMatchCreated, pub.routingKey)

	var got eventtypes.EventPayload
	require.NoError(t, json.Unmarshal(pub.body, &got))
	assert.Equal(t, "e-1", got.EventID)
}

func TestPublishMatchEventError(t *testing.T) {
	err := NewEmitter(&recordingPublisher{err: errors.New("closed")}).PublishMatchEvent(eventtypes.EventPayload{})
	assert.Error(t, err)
}

func TestUserDeletedDispatch(t *testing.T) {
	cleaner := &fakeCleaner{}
	consumer := NewConsumer(nil, cleaner)

	body, err := json.Marshal(eventtypes.EventPayload{
		EventType: eventtypes.EventTypeUserDeleted,
		Data:      json.RawMessage(`{"user_id":12}`),
	})
	require.NoError(t, err)

	require.NoError(t, mq.Dispatch(body, consumer.Handlers()))
	assert.Equal(t, []int{12}, cleaner.deleted)
}

func TestUserDeletedIgnoresBadPayload(t *testing.T) {
	cleaner := &fakeCleaner{}
	h := NewEventHandler(cleaner)

	h.HandleUserDeletedEvent(json.RawMessage(`not json`))
	h.HandleUserDeletedEvent(json.RawMessage(`{"user_id":0}`))
	assert.Empty(t, cleaner.deleted)

	// 처리 실패는 로그만 남김
	cleaner.err = errors.New("db down")
	h.HandleUserDeletedEvent(json.RawMessage(`{"user_id":5}`))
	assert.Equal(t, []int{5}, cleaner.deleted)
}
