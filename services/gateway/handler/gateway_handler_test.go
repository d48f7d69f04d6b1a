package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"spark/pkg/redis"
	"spark/services/gateway/handler"
	"spark/services/gateway/transport"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seen struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Query  string `json:"query"`
	UserID string `json:"user_id"`
	Body   string `json:"body"`
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Backend", "yes")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(seen{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			UserID: r.Header.Get("X-User-ID"),
			Body:   string(body),
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGateway(t *testing.T) (http.Handler, *redis.RedisClient) {
	t.Helper()
	backend := newBackend(t)

	mr := miniredis.RunT(t)
	rc := redis.NewFromAddr(mr.Addr())
	t.Cleanup(func() { _ = rc.Close() })

	gh, err := handler.NewGatewayHandler(map[string]string{
		"user":  backend.URL,
		"match": backend.URL,
		"auth":  backend.URL,
	})
	require.NoError(t, err)
	return transport.NewRouter(gh, rc, "session_id"), rc
}

func TestProxyWithSession(t *testing.T) {
	h, rc := newGateway(t)
	sessionID, err := rc.CreateSession(context.Background(), 7, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/match/likes/3?src=feed", strings.NewReader(`{"x":1}`))
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})
	req.Header.Set("X-User-ID", "999")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.Equal(t, "yes", rec.Header().Get("X-Backend"))

	var got seen
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/likes/3", got.Path)
	assert.Equal(t, "src=feed", got.Query)
	assert.Equal(t, "7", got.UserID)
	assert.Equal(t, `{"x":1}`, got.Body)
}

func TestProxyRequiresSession(t *testing.T) {
	h, _ := newGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/user/find", nil)
	req.Header.Set("X-User-ID", "1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/user/find", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "expired"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthPathsSkipSession(t *testing.T) {
	h, _ := newGateway(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
	req.Header.Set("X-User-ID", "5")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	var got seen
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "/login", got.Path)
	assert.Empty(t, got.UserID, "client supplied header must be removed")
}

func TestUnknownService(t *testing.T) {
	h, rc := newGateway(t)
	sessionID, err := rc.CreateSession(context.Background(), 7, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/chat/rooms", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInternalRouteBlocked(t *testing.T) {
	h, rc := newGateway(t)
	sessionID, err := rc.CreateSession(context.Background(), 7, time.Hour)
	require.NoError(t, err)

	for _, path := range []string{"/user/register", "/user/register/"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"name":"x"}`))
		req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Empty(t, rec.Header().Get("X-Backend"), path)
	}
}
