package middleware

import (
	"context"
	"strconv"
	"strings"

	"spark/pkg/apperror"
	"spark/pkg/types/commontype"

	"github.com/labstack/echo/v4"
)

// SessionStore는 세션 ID로 사용자 ID를 찾습니다 (redis.RedisClient)
type SessionStore interface {
	GetUserBySessionID(ctx context.Context, sessionID string) (int, error)
}

// SessionMiddleware는 세션 쿠키를 X-User-ID 헤더로 바꿉니다.
// 클라이언트가 보낸 X-User-ID 는 항상 제거합니다.
func SessionMiddleware(store SessionStore, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			req.Header.Del(commontype.HeaderUserID)

			// 인증이 필요 없는 경로
			if isPublicPath(req.URL.Path) {
				return next(c)
			}

			// 쿠키에서 세션 ID 추출
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return apperror.Unauthorized("no session id provided")
			}

			// Redis에서 세션 ID로 사용자 정보 조회
			userID, err := store.GetUserBySessionID(req.Context(), cookie.Value)
			if err != nil {
				return apperror.ErrInvalidSession
			}

			// 사용자 ID를 헤더에 저장
			req.Header.Set(commontype.HeaderUserID, strconv.Itoa(userID))

			return next(c)
		}
	}
}

func isPublicPath(path string) bool {
	return strings.HasPrefix(path, "/auth/") || path == "/auth" || path == "/health"
}
