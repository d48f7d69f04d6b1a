package handler

import (
	"net/http"
	"time"

	"spark/pkg/apperror"
	"spark/pkg/dto"
	"spark/services/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService *service.AuthService
	cookieName  string
	sessionTTL  time.Duration
}

func NewAuthHandler(authService *service.AuthService, cookieName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieName: cookieName, sessionTTL: sessionTTL}
}

type loginRequest struct {
	AccessToken string `json:"accessToken"`
}

func (h *AuthHandler) RegisterHandler(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrInvalidPayload
	}

	user, sessionID, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, sessionID)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrInvalidPayload
	}

	user, sessionID, err := h.authService.Login(c.Request().Context(), req.AccessToken)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, sessionID)
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) LogoutHandler(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	h.clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// 세션 쿠키 설정
func (h *AuthHandler) setSessionCookie(c echo.Context, sessionID string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
	})
}
