package models

import (
	"time"

	"spark/pkg/preference"

	"gorm.io/datatypes"
)

// User는 프로필 저장소의 한 행입니다. 사진은 순서가 있고 첫 번째가 대표 사진입니다.
type User struct {
	ID              int                         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string                      `gorm:"size:100" json:"name"`
	Gender          string                      `gorm:"size:32;index" json:"gender"`
	Birthday        *time.Time                  `json:"birthday"`
	Work            string                      `gorm:"size:200" json:"work"`
	Bio             string                      `gorm:"type:text" json:"bio"`
	CurrentLocation string                      `gorm:"size:100" json:"current_location"`
	Photos          datatypes.JSONSlice[string] `json:"photos"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	Preferences     preference.Preferences      `json:"preferences"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"index" json:"updated_at"`
}
