package middleware

import (
	"errors"
	"net/http"

	"spark/pkg/apperror"
	"spark/pkg/helper"
	"spark/pkg/types/commontype"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const userIDKey = "user_id"

// RequireUserID는 게이트웨이가 넣어준 X-User-ID 를 검증하고 컨텍스트에 저장합니다
func RequireUserID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := helper.ParseUserID(c.Request().Header.Get(commontype.HeaderUserID))
			if err != nil {
				return err
			}
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID는 RequireUserID 가 저장한 값을 꺼냅니다
func UserID(c echo.Context) int {
	id, _ := c.Get(userIDKey).(int)
	return id
}

// ErrorHandler는 AppError 코드를 HTTP 상태와 {"error","message"} 바디로 변환합니다
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := apperror.HTTPStatus(err)
	body := helper.NewErrorBody(err)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		body = helper.ErrorBody{Error: http.StatusText(he.Code), Message: http.StatusText(he.Code)}
		if msg, ok := he.Message.(string); ok {
			body.Message = msg
		}
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}
