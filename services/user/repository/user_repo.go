package repository

import (
	"context"
	"errors"

	"spark/pkg/apperror"
	"spark/pkg/db"
	"spark/pkg/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx는 같은 저장소를 트랜잭션에 묶어 돌려줍니다
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// 데이터베이스 초기화
func (r *UserRepository) InitDB() error {
	if err := db.Migrate(r.db); err != nil {
		log.Error().Err(err).Msg("❌ Failed to migrate tables")
		return err
	}
	log.Info().Msg("✅ Tables users and likes migrated or already exist.")
	return nil
}

// CandidateQuery는 피드 후보 조회 조건입니다
type CandidateQuery struct {
	ExcludeIDs []int
	// 비어 있으면 성별 필터 없음
	GenderAliases []string
	Limit         int
}

// 유저 생성
func (r *UserRepository) InsertUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		log.Error().Err(err).Msg("❌ Failed to insert user")
		return apperror.Internal("failed to insert user", err)
	}
	return nil
}

// 유저 조회 (ID)
func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		log.Error().Err(err).Int("user_id", id).Msg("❌ Failed to get user by ID")
		return nil, apperror.Internal("failed to get user", err)
	}
	return &user, nil
}

// Exists는 유저 존재 여부만 확인합니다
func (r *UserRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, apperror.Internal("failed to check user", err)
	}
	return count > 0, nil
}

// 유저 리스트 조회
func (r *UserRepository) GetUserList(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to get user list")
		return nil, apperror.Internal("failed to get user list", err)
	}
	return users, nil
}

// FindByIDs는 주어진 ID 들의 유저를 ID 로 인덱싱해 돌려줍니다
func (r *UserRepository) FindByIDs(ctx context.Context, ids []int) (map[int]models.User, error) {
	out := make(map[int]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, apperror.Internal("failed to get users", err)
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// FindCandidates는 제외 ID, 성별 조건으로 최근 수정 순 후보를 조회합니다
func (r *UserRepository) FindCandidates(ctx context.Context, q CandidateQuery) ([]models.User, error) {
	tx := r.db.WithContext(ctx).Model(&models.User{})

	// 빈 목록으로 NOT IN 을 만들면 NOT IN (NULL) 이 되어 모든 행이 빠짐
	if len(q.ExcludeIDs) > 0 {
		tx = tx.Where("id NOT IN ?", q.ExcludeIDs)
	}
	if len(q.GenderAliases) > 0 {
		tx = tx.Where("LOWER(TRIM(gender)) IN ?", q.GenderAliases)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var users []models.User
	if err := tx.Order("updated_at DESC").Order("id DESC").Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("❌ Failed to find candidates")
		return nil, apperror.Internal("failed to find candidates", err)
	}
	return users, nil
}

// 유저 부분 업데이트
func (r *UserRepository) UpdateUser(ctx context.Context, id int, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.User{ID: id}).Updates(fields)
	if result.Error != nil {
		log.Error().Err(result.Error).Int("user_id", id).Msg("❌ Failed to update user")
		return apperror.Internal("failed to update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

// 유저 삭제
func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Int("user_id", id).Msg("❌ Failed to delete user")
		return apperror.Internal("failed to delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

// ForEachBatch는 전체 유저를 size 단위로 순회합니다
func (r *UserRepository) ForEachBatch(ctx context.Context, size int, fn func([]models.User) error) error {
	var batch []models.User
	result := r.db.WithContext(ctx).FindInBatches(&batch, size, func(_ *gorm.DB, _ int) error {
		return fn(batch)
	})
	if result.Error != nil {
		return apperror.Internal("failed to iterate users", result.Error)
	}
	return nil
}
