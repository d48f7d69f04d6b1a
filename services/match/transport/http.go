package transport

import (
	"net/http"

	"spark/pkg/middleware"
	"spark/services/match/handler"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
)

func NewRouter(matchHandler *handler.MatchHandler) *echo.Echo {
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

	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// 게이트웨이가 넣어준 X-User-ID 가 있어야 함
	api := e.Group("", middleware.RequireUserID())

	api.GET("/feed", matchHandler.Feed)
	api.POST("/likes/:id", matchHandler.Like)
	api.GET("/likes/received", matchHandler.ReceivedLikes)
	api.POST("/dislikes/reconcile", matchHandler.Reconcile)
	api.POST("/dislikes/:id", matchHandler.Dislike)
	api.GET("/matches", matchHandler.Matches)
	api.GET("/compatibility/:id", matchHandler.Compatibility)

	// 웹소켓 매칭 알림 엔드포인트
	api.GET("/ws/match", matchHandler.HandleMatchSocket)

	return e
}
