package repository

import (
	"context"
	"errors"

	"spark/pkg/apperror"
	"spark/pkg/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// WithTx는 같은 저장소를 트랜잭션에 묶어 돌려줍니다
func (r *LikeRepository) WithTx(tx *gorm.DB) *LikeRepository {
	return &LikeRepository{db: tx}
}

// GetLike는 from -> to 간선을 조회합니다. 없으면 (nil, nil)
func (r *LikeRepository) GetLike(ctx context.Context, fromUserID, toUserID int) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error().Err(err).Int("from", fromUserID).Int("to", toUserID).Msg("❌ Failed to get like")
		return nil, apperror.Internal("failed to get like", err)
	}
	return &like, nil
}

// CreateLike는 간선을 삽입합니다. 유니크 충돌은 원본 에러 그대로 돌려줍니다
func (r *LikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *LikeRepository) Exists(ctx context.Context, fromUserID, toUserID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Count(&count).Error
	if err != nil {
		return false, apperror.Internal("failed to check like", err)
	}
	return count > 0, nil
}

// LikedIDs는 fromUserID 가 좋아요한 대상 ID 목록입니다
func (r *LikeRepository) LikedIDs(ctx context.Context, fromUserID int) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("from_user_id = ?", fromUserID).
		Pluck("to_user_id", &ids).Error
	if err != nil {
		log.Error().Err(err).Int("from", fromUserID).Msg("❌ Failed to get liked ids")
		return nil, apperror.Internal("failed to get liked ids", err)
	}
	return ids, nil
}

// LikesFrom은 보낸 좋아요를 최신순으로 돌려줍니다
func (r *LikeRepository) LikesFrom(ctx context.Context, fromUserID int) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("from_user_id = ?", fromUserID).
		Order("created_at DESC").Order("id DESC").
		Find(&likes).Error
	if err != nil {
		return nil, apperror.Internal("failed to get sent likes", err)
	}
	return likes, nil
}

// LikesTo는 받은 좋아요를 최신순으로 돌려줍니다
func (r *LikeRepository) LikesTo(ctx context.Context, toUserID int) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("to_user_id = ?", toUserID).
		Order("created_at DESC").Order("id DESC").
		Find(&likes).Error
	if err != nil {
		return nil, apperror.Internal("failed to get received likes", err)
	}
	return likes, nil
}

// DeleteLike는 from -> to 간선을 삭제합니다. 없으면 아무 일도 하지 않습니다
func (r *LikeRepository) DeleteLike(ctx context.Context, fromUserID, toUserID int) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Delete(&models.Like{})
	if result.Error != nil {
		log.Error().Err(result.Error).Int("from", fromUserID).Int("to", toUserID).Msg("❌ Failed to delete like")
		return false, apperror.Internal("failed to delete like", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteByUser는 해당 유저가 포함된 모든 간선을 삭제합니다
func (r *LikeRepository) DeleteByUser(ctx context.Context, userID int) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Delete(&models.Like{})
	if result.Error != nil {
		return 0, apperror.Internal("failed to delete likes", result.Error)
	}
	return result.RowsAffected, nil
}
