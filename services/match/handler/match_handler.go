package handler

import (
	"net/http"

	"spark/pkg/dto"
	"spark/pkg/helper"
	"spark/pkg/middleware"
	"spark/services/match/service"

	"github.com/labstack/echo/v4"
)

type MatchHandler struct {
	matchService *service.MatchService
}

func NewMatchHandler(matchService *service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func (h *MatchHandler) Feed(c echo.Context) error {
	feed, err := h.matchService.Feed(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feed)
}

func (h *MatchHandler) Like(c echo.Context) error {
	targetID, err := helper.ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	resp, err := h.matchService.RecordLike(c.Request().Context(), middleware.UserID(c), targetID)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, resp)
}

func (h *MatchHandler) Dislike(c echo.Context) error {
	targetID, err := helper.ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	resp, err := h.matchService.RecordDislike(c.Request().Context(), middleware.UserID(c), targetID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *MatchHandler) Reconcile(c echo.Context) error {
	pruned, err := h.matchService.ReconcileDislikes(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ReconcileResponse{Pruned: pruned})
}

func (h *MatchHandler) ReceivedLikes(c echo.Context) error {
	list, err := h.matchService.ReceivedLikes(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *MatchHandler) Matches(c echo.Context) error {
	list, err := h.matchService.Matches(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *MatchHandler) Compatibility(c echo.Context) error {
	targetID, err := helper.ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	resp, err := h.matchService.CheckCompatibility(c.Request().Context(), middleware.UserID(c), targetID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
