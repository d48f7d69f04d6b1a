package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"spark/pkg/db/dbtest"
	"spark/pkg/redis"
	"spark/services/auth/handler"
	"spark/services/auth/repository"
	"spark/services/auth/service"
	"spark/services/auth/transport"
	user_repository "spark/services/user/repository"
	user_service "spark/services/user/service"

	eventtypes "spark/pkg/types/eventtype"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "session_id"

type nopEmitter struct{}

func (nopEmitter) PublishUserEvent(eventtypes.EventPayload) error { return nil }

type env struct {
	router http.Handler
	redis  *redis.RedisClient
	mr     *miniredis.Miniredis
}

func newEnv(t *testing.T, masterKey bool) *env {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewFromAddr(mr.Addr())
	t.Cleanup(func() { _ = rc.Close() })

	users := user_service.NewUserService(user_repository.NewUserRepository(dbtest.New(t)), nopEmitter{})
	authService := service.NewAuthService(repository.NewAuthRepository(rc, time.Hour), users, masterKey)
	router := transport.NewRouter(handler.NewAuthHandler(authService, cookieName, time.Hour))
	return &env{router: router, redis: rc, mr: mr}
}

func (e *env) post(path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", cookieName)
	return nil
}

func TestRegisterIssuesSession(t *testing.T) {
	e := newEnv(t, false)

	rec := e.post("/register", `{"name":"Mina","gender":"Woman","birthday":"1998-04-02"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	userID, err := e.redis.GetUserBySessionID(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Positive(t, userID)
	assert.Equal(t, time.Hour, e.mr.TTL("session:"+cookie.Value))

	rec = e.post("/register", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMasterKeyLogin(t *testing.T) {
	e := newEnv(t, true)

	rec := e.post("/register", `{"name":"Jun"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	registered := sessionCookie(t, rec)
	userID, err := e.redis.GetUserBySessionID(context.Background(), registered.Value)
	require.NoError(t, err)

	rec = e.post("/login", `{"accessToken":"masterkey-`+strconv.Itoa(userID)+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEqual(t, registered.Value, sessionCookie(t, rec).Value)

	assert.Equal(t, http.StatusUnauthorized, e.post("/login", `{"accessToken":"masterkey-999"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, e.post("/login", `{"accessToken":"kakao-token"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, e.post("/login", `{"accessToken":"masterkey-abc"}`).Code)
}

func TestMasterKeyDisabled(t *testing.T) {
	e := newEnv(t, false)

	rec := e.post("/register", `{"name":"Jun"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	userID, err := e.redis.GetUserBySessionID(context.Background(), sessionCookie(t, rec).Value)
	require.NoError(t, err)

	rec = e.post("/login", `{"accessToken":"masterkey-`+strconv.Itoa(userID)+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	e := newEnv(t, false)

	rec := e.post("/register", `{"name":"Jun"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	cookie := sessionCookie(t, rec)

	rec = e.post("/logout", "", cookie)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, -1, sessionCookie(t, rec).MaxAge)
	assert.False(t, e.mr.Exists("session:"+cookie.Value))

	// 쿠키 없이 호출해도 성공
	assert.Equal(t, http.StatusNoContent, e.post("/logout", "").Code)
}
