package repository

import (
	"context"
	"errors"

	"spark/pkg/apperror"
	"spark/pkg/models"
	"spark/pkg/preference"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) WithTx(tx *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: tx}
}

// 선호 조회. 깨진 값은 빈 선호로 읽힙니다
func (r *PreferenceRepository) GetPreferences(ctx context.Context, userID int) (preference.Preferences, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select("id", "preferences").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return preference.Preferences{}, apperror.ErrUserNotFound
		}
		log.Error().Err(err).Int("user_id", userID).Msg("❌ Failed to get preferences")
		return preference.Preferences{}, apperror.Internal("failed to get preferences", err)
	}
	return user.Preferences, nil
}

// 선호 컬럼만 저장. updated_at 은 건드리지 않아 피드 순서가 바뀌지 않습니다
func (r *PreferenceRepository) SavePreferences(ctx context.Context, userID int, prefs preference.Preferences) error {
	err := r.db.WithContext(ctx).Model(&models.User{ID: userID}).UpdateColumn("preferences", prefs).Error
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("❌ Failed to save preferences")
		return apperror.Internal("failed to save preferences", err)
	}
	return nil
}
