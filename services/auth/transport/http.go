package transport

import (
	"net/http"

	"spark/pkg/middleware"
	"spark/services/auth/handler"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
)

func NewRouter(authHandler *handler.AuthHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echo_middleware.Recover())

	RegisterAuthRoutes(e, authHandler)
	return e
}

// RegisterAuthRoutes 설정
func RegisterAuthRoutes(e *echo.Echo, authHandler *handler.AuthHandler) {
	// CORS 설정
	e.Use(echo_middleware.CORSWithConfig(echo_middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// 게이트웨이가 /auth 접두사를 떼고 전달함
	e.POST("/register", authHandler.RegisterHandler)
	e.POST("/login", authHandler.LoginHandler)
	e.POST("/logout", authHandler.LogoutHandler)
}
