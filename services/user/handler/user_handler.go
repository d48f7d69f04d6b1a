package handler

import (
	"encoding/json"
	"net/http"

	"spark/pkg/apperror"
	"spark/pkg/dto"
	"spark/pkg/helper"
	"spark/pkg/types/commontype"
	"spark/services/user/service"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func callerID(r *http.Request) (int, error) {
	return helper.ParseUserID(r.Header.Get(commontype.HeaderUserID))
}

// 유저 리스트 조회
func (h *UserHandler) FindUserList(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetUserList(r.Context())
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, users)
}

// 내 정보 조회
func (h *UserHandler) FindUser(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, user)
}

// 특정 유저 조회
func (h *UserHandler) FindUserByID(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		helper.WriteError(w, err)
		return
	}

	targetID, err := helper.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), targetID)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, user)
}

// 유저 등록 (auth 서비스 내부 호출)
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helper.WriteError(w, apperror.ErrInvalidPayload)
		return
	}

	user, err := h.userService.RegisterUser(r.Context(), req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusCreated, user)
}

// 유저 업데이트
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helper.WriteError(w, apperror.ErrInvalidPayload)
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), userID, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, user)
}

// 유저 삭제
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		helper.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
