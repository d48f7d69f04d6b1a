package event

import (
	"encoding/json"
	"errors"
	"testing"

	"spark/pkg/mq"
	eventtypes "spark/pkg/types/eventtype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	exchange string
	body     []byte
	err      error
}

func (p *recordingPublisher) PublishMessage(exchange, _ string, body []byte) error {
	p.exchange = exchange
	p.body = body
	return p.err
}

func TestPublishUserEvent(t *testing.T) {
	pub := &recordingPublisher{}
	emitter := NewEmitter(pub)

	err := emitter.PublishUserEvent(eventtypes.EventPayload{
		EventType: eventtypes.EventTypeUserDeleted,
		Data:      json.RawMessage(`{"user_id":3}`),
	})
	require.NoError(t, err)
	assert.Equal(t, mq.ExchangeUserEvents, pub.exchange)

	var got eventtypes.EventPayload
	require.NoError(t, json.Unmarshal(pub.body, &got))
	assert.Equal(t, eventtypes.EventTypeUserDeleted, got.EventType)
	assert.JSONEq(t, `{"user_id":3}`, string(got.Data))
}

func TestPublishUserEventError(t *testing.T) {
	emitter := NewEmitter(&recordingPublisher{err: errors.New("closed")})
	err := emitter.PublishUserEvent(eventtypes.EventPayload{EventType: eventtypes.EventTypeUserDeleted})
	assert.Error(t, err)
}
