package dto

import (
	"time"

	"spark/pkg/preference"
)

type UserDTO struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Gender          string     `json:"gender"`
	Birthday        *time.Time `json:"birthday,omitempty"`
	Work            string     `json:"work"`
	Bio             string     `json:"bio"`
	CurrentLocation string     `json:"current_location"`
	Photos          []string   `json:"photos"`
	Tags            []string   `json:"tags"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// RegisterRequest는 /auth/register, /register 요청 바디입니다
type RegisterRequest struct {
	Name            string              `json:"name"`
	Gender          string              `json:"gender"`
	Birthday        string              `json:"birthday"`
	Work            string              `json:"work"`
	Bio             string              `json:"bio"`
	CurrentLocation string              `json:"current_location"`
	Photos          []string            `json:"photos"`
	Tags            []string            `json:"tags"`
	Preferences     *PreferencesPayload `json:"preferences,omitempty"`
}

// UpdateUserRequest는 부분 수정 요청입니다. nil 필드는 바꾸지 않습니다
type UpdateUserRequest struct {
	Name            *string   `json:"name"`
	Gender          *string   `json:"gender"`
	Birthday        *string   `json:"birthday"`
	Work            *string   `json:"work"`
	Bio             *string   `json:"bio"`
	CurrentLocation *string   `json:"current_location"`
	Photos          *[]string `json:"photos"`
	Tags            *[]string `json:"tags"`
}

// PreferencesPayload는 클라이언트가 수정할 수 있는 선호 필드입니다.
// dislikedProfiles 는 서버가 관리하므로 받지 않습니다.
type PreferencesPayload struct {
	InterestedIn       []string            `json:"interestedIn"`
	RelationshipIntent string              `json:"relationshipIntent"`
	SexualOrientation  string              `json:"sexualOrientation"`
	Settings           preference.Settings `json:"settings"`
}

type PreferencesResponse struct {
	InterestedIn       []string                  `json:"interestedIn"`
	RelationshipIntent string                    `json:"relationshipIntent"`
	SexualOrientation  string                    `json:"sexualOrientation"`
	Settings           preference.Settings       `json:"settings"`
	DislikedProfiles   []preference.DislikeEntry `json:"dislikedProfiles"`
}
