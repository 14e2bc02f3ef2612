// Package testutil 提供测试用的内存数据库。
package testutil

import (
	"fmt"
	"regexp"
	"testing"

	"qa-service-go/internal/config"
	"qa-service-go/internal/model"
	"qa-service-go/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// NewDB 为当前测试打开一个独立的内存 SQLite 数据库并完成迁移，测试结束时关闭。
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := unsafeChars.ReplaceAllString(t.Name(), "_")
	db, err := database.Open(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, model.All()...))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
