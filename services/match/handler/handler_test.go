package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"spark/pkg/config"
	"spark/pkg/db/dbtest"
	"spark/pkg/dto"
	"spark/pkg/helper"
	"spark/pkg/models"
	"spark/pkg/types/stype"
	"spark/services/match/handler"
	"spark/services/match/service"
	"spark/services/match/transport"

	eventtypes "spark/pkg/types/eventtype"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type nopEmitter struct{}

func (nopEmitter) PublishMatchEvent(eventtypes.EventPayload) error { return nil }

func newRouter(t *testing.T) (http.Handler, *service.MatchService, *gorm.DB) {
	t.Helper()
	gdb := dbtest.New(t)
	svc := service.NewMatchService(gdb, nopEmitter{}, service.NewNotifier(), config.MatchConfig{
		PageSize:             50,
		DefaultMaxDistanceKm: 50,
		DislikeTTL:           72 * time.Hour,
	})
	return transport.NewRouter(handler.NewMatchHandler(svc)), svc, gdb
}

func do(t *testing.T, h http.Handler, method, path string, userID int) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(""))
	if userID > 0 {
		req.Header.Set("X-User-ID", strconv.Itoa(userID))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seed(t *testing.T, gdb *gorm.DB, names ...string) []models.User {
	t.Helper()
	users := make([]models.User, 0, len(names))
	for _, n := range names {
		users = append(users, models.User{Name: n})
	}
	require.NoError(t, gdb.Create(&users).Error)
	return users
}

func TestRequiresUserID(t *testing.T) {
	h, _, _ := newRouter(t)

	rec := do(t, h, http.MethodGet, "/feed", 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body helper.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Message)

	rec = do(t, h, http.MethodGet, "/health", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFeedEndpoint(t *testing.T) {
	h, _, gdb := newRouter(t)
	users := seed(t, gdb, "a", "b", "c")

	rec := do(t, h, http.MethodGet, "/feed", users[0].ID)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var feed dto.FeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	assert.Len(t, feed.Cards, 2)
}

func TestLikeEndpoints(t *testing.T) {
	h, _, gdb := newRouter(t)
	users := seed(t, gdb, "a", "b")
	a, b := users[0].ID, users[1].ID

	rec := do(t, h, http.MethodPost, "/likes/"+strconv.Itoa(b), a)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/likes/"+strconv.Itoa(b), a)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/likes/"+strconv.Itoa(a), b)
	require.Equal(t, http.StatusCreated, rec.Code)
	var like dto.LikeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &like))
	assert.True(t, like.Matched)

	rec = do(t, h, http.MethodGet, "/matches", a)
	require.Equal(t, http.StatusOK, rec.Code)
	var matches []dto.ProfileSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, b, matches[0].ID)

	rec = do(t, h, http.MethodGet, "/likes/received", a)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/likes/"+strconv.Itoa(a), a).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/likes/999", a).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/likes/abc", a).Code)
}

func TestDislikeEndpoints(t *testing.T) {
	h, _, gdb := newRouter(t)
	users := seed(t, gdb, "a", "b")
	a, b := users[0].ID, users[1].ID

	rec := do(t, h, http.MethodPost, "/dislikes/"+strconv.Itoa(b), a)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/dislikes/reconcile", a)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var reconcile dto.ReconcileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reconcile))
	assert.Zero(t, reconcile.Pruned)

	rec = do(t, h, http.MethodGet, "/feed", a)
	var feed dto.FeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	assert.Empty(t, feed.Cards)
}

func TestCompatibilityEndpoint(t *testing.T) {
	h, _, gdb := newRouter(t)
	users := seed(t, gdb, "a", "b")

	rec := do(t, h, http.MethodGet, "/compatibility/"+strconv.Itoa(users[1].ID), users[0].ID)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.CompatibilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Compatible)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/compatibility/999", users[0].ID).Code)
}

func TestMatchSocket(t *testing.T) {
	h, svc, gdb := newRouter(t)
	users := seed(t, gdb, "a", "b")
	a, b := users[0].ID, users[1].ID

	srv := httptest.NewServer(h)
	defer srv.Close()

	header := http.Header{}
	header.Set("X-User-ID", strconv.Itoa(a))
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/match", header)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(stype.WebSocketMessage{Kind: stype.MessageKindPing}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg stype.WebSocketMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, stype.MessageKindPong, msg.Kind)

	// pong 을 받았으면 등록이 끝난 상태
	_, err = svc.RecordLike(context.Background(), b, a)
	require.NoError(t, err)

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, stype.MessageKindLike, msg.Kind)
	assert.JSONEq(t, `{"user_id":`+strconv.Itoa(b)+`}`, string(msg.Payload))
}
