package db

import (
	"spark/pkg/models"

	"gorm.io/gorm"
)

// Models는 마이그레이션 대상 테이블 목록입니다
func Models() []interface{} {
	return []interface{}{&models.User{}, &models.Like{}}
}

// Migrate: users, likes 테이블 생성/갱신
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
