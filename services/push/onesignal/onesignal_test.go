package onesignal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"spark/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPush(t *testing.T) {
	var got PushMessage
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(config.PushConfig{AppID: "app", APIKey: "key", URL: srv.URL})
	err := client.Push(context.Background(), Payload{PushUserList: []int{3, 4}, Header: "It's a match!", Content: "hi"})
	require.NoError(t, err)

	assert.Equal(t, "Basic key", auth)
	assert.Equal(t, "app", got.AppID)
	assert.Equal(t, []string{"3", "4"}, got.IncludeAliases.ExternalID)
	assert.Equal(t, "It's a match!", got.Headings["en"])
}

func TestPushErrors(t *testing.T) {
	disabled := NewClient(config.PushConfig{URL: "http://unused"})
	assert.ErrorIs(t, disabled.Push(context.Background(), Payload{PushUserList: []int{1}}), ErrDisabled)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(config.PushConfig{AppID: "app", APIKey: "key", URL: srv.URL})
	assert.Error(t, client.Push(context.Background(), Payload{PushUserList: []int{1}}))
	assert.NoError(t, client.Push(context.Background(), Payload{}))
}
