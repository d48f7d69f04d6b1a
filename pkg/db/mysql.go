package db

import (
	"time"

	"spark/pkg/config"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectMySQL: MySQL 연결을 설정하고 반환
func ConnectMySQL(cfg config.MySQLConfig) (*gorm.DB, error) {
	dsn := cfg.MySQLDSN()

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Error().Err(err).Msg("❌ MySQL 연결 실패")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info().Msg("✅ MySQL 연결 성공!")
	return db, nil
}
