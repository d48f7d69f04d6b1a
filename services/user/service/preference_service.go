package service

import (
	"context"

	"spark/pkg/apperror"
	"spark/pkg/dto"
	"spark/pkg/preference"
	"spark/services/user/repository"
)

type PreferenceService struct {
	repo *repository.PreferenceRepository
}

func NewPreferenceService(repo *repository.PreferenceRepository) *PreferenceService {
	return &PreferenceService{repo: repo}
}

func ToPreferencesResponse(p preference.Preferences) dto.PreferencesResponse {
	resp := dto.PreferencesResponse{
		InterestedIn:       p.InterestedIn,
		RelationshipIntent: p.RelationshipIntent,
		SexualOrientation:  p.SexualOrientation,
		Settings:           p.Settings,
		DislikedProfiles:   p.DislikedProfiles,
	}
	if resp.InterestedIn == nil {
		resp.InterestedIn = []string{}
	}
	if resp.DislikedProfiles == nil {
		resp.DislikedProfiles = []preference.DislikeEntry{}
	}
	return resp
}

// ApplyPreferences는 클라이언트 입력을 검증/정규화해 현재 선호에 덮어씁니다.
// dislikedProfiles 는 서버 소유이므로 그대로 둡니다.
func ApplyPreferences(current preference.Preferences, in dto.PreferencesPayload) (preference.Preferences, error) {
	s := in.Settings
	if s.MaxDistance != nil && *s.MaxDistance < 0 {
		return current, apperror.InvalidInput("maxDistance must not be negative")
	}
	if s.MinAge != nil && *s.MinAge < 0 {
		return current, apperror.InvalidInput("minAge must not be negative")
	}
	if s.MaxAge != nil && *s.MaxAge < 0 {
		return current, apperror.InvalidInput("maxAge must not be negative")
	}
	if s.MinAge != nil && s.MaxAge != nil && *s.MinAge > *s.MaxAge {
		return current, apperror.InvalidInput("minAge must not exceed maxAge")
	}

	next := preference.Preferences{
		InterestedIn:       in.InterestedIn,
		RelationshipIntent: in.RelationshipIntent,
		SexualOrientation:  in.SexualOrientation,
		Settings:           in.Settings,
		DislikedProfiles:   current.DislikedProfiles,
	}
	return next.Normalized(), nil
}

func (s *PreferenceService) GetPreferences(ctx context.Context, userID int) (dto.PreferencesResponse, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return dto.PreferencesResponse{}, err
	}
	return ToPreferencesResponse(prefs), nil
}

func (s *PreferenceService) UpdatePreferences(ctx context.Context, userID int, in dto.PreferencesPayload) (dto.PreferencesResponse, error) {
	current, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return dto.PreferencesResponse{}, err
	}

	next, err := ApplyPreferences(current, in)
	if err != nil {
		return dto.PreferencesResponse{}, err
	}

	if err := s.repo.SavePreferences(ctx, userID, next); err != nil {
		return dto.PreferencesResponse{}, err
	}
	return ToPreferencesResponse(next), nil
}
