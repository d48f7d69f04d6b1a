package transport

import (
	"net/http"

	"spark/pkg/middleware"
	"spark/services/gateway/handler"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
)

func NewRouter(gatewayHandler *handler.GatewayHandler, sessions middleware.SessionStore, cookieName string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler

	e.Use(echo_middleware.Recover())

	// CORS 설정
	e.Use(echo_middleware.CORSWithConfig(echo_middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 세션 쿠키 -> X-User-ID
	e.Use(middleware.SessionMiddleware(sessions, cookieName))

	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.Any("/*", gatewayHandler.ProxyService)

	return e
}
