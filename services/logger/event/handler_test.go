package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"spark/pkg/logger"
	"spark/pkg/mq"
	eventtypes "spark/pkg/types/eventtype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	logs []logger.BaseLog
	err  error
}

func (f *fakeWriter) InsertLog(_ context.Context, log logger.BaseLog) error {
	if f.err != nil {
		return f.err
	}
	f.logs = append(f.logs, log)
	return nil
}

func TestHandleLogEvent(t *testing.T) {
	writer := &fakeWriter{}
	consumer := NewConsumer(nil, writer)

	at := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	data, err := json.Marshal(logger.BaseLog{
		Level:        "info",
		Timestamp:    at,
		Service:      int(logger.ServiceTypeMatch),
		LogEventType: int(logger.LogEventMatchCreated),
		Message:      "Match created",
		Log:          map[string]interface{}{"match_id": "m-1"},
	})
	require.NoError(t, err)
	body, err := json.Marshal(eventtypes.EventPayload{EventType: eventtypes.EventTypeLog, Data: data})
	require.NoError(t, err)

	require.NoError(t, mq.Dispatch(body, consumer.Handlers()))
	require.Len(t, writer.logs, 1)
	got := writer.logs[0]
	assert.Equal(t, "Match created", got.Message)
	assert.Equal(t, int(logger.ServiceTypeMatch), got.Service)
	assert.True(t, got.Timestamp.Equal(at))
}

func TestHandleLogEventBadInput(t *testing.T) {
	writer := &fakeWriter{}
	h := NewEventHandler(writer)

	h.HandleLogEvent(json.RawMessage(`[`))
	assert.Empty(t, writer.logs)

	h.HandleLogEvent(json.RawMessage(`{"message":"no time"}`))
	require.Len(t, writer.logs, 1)
	assert.False(t, writer.logs[0].Timestamp.IsZero())

	writer.err = errors.New("mongo down")
	h.HandleLogEvent(json.RawMessage(`{"message":"dropped"}`))
	assert.Len(t, writer.logs, 1)
}
