// Package dbtest는 테스트용 인메모리 sqlite gorm DB를 제공합니다.
package dbtest

import (
	"fmt"
	"testing"
	"time"

	"spark/pkg/db"
	"spark/pkg/helper"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New는 테스트마다 격리된 DB를 만들고 운영과 같은 모델로 마이그레이션합니다
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", helper.SafeName(t.Name()))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// 트랜잭션과 일반 쿼리가 같은 연결을 쓰도록 1개로 제한
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}
