package handler

import (
	"encoding/json"
	"net/http"

	"spark/pkg/apperror"
	"spark/pkg/dto"
	"spark/pkg/helper"
	"spark/services/user/service"
)

type PreferenceHandler struct {
	preferenceService *service.PreferenceService
}

func NewPreferenceHandler(preferenceService *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
	}
}

// 내 선호 조회
func (h *PreferenceHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	prefs, err := h.preferenceService.GetPreferences(r.Context(), userID)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, prefs)
}

// 내 선호 수정
func (h *PreferenceHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	var payload dto.PreferencesPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		helper.WriteError(w, apperror.ErrInvalidPayload)
		return
	}

	prefs, err := h.preferenceService.UpdatePreferences(r.Context(), userID, payload)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, prefs)
}
