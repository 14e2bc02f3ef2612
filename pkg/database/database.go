// Package database 负责建立关系型数据库和 Redis 连接，并提供事务工作单元。
package database

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"qa-service-go/internal/config"
	"qa-service-go/pkg/log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open 根据配置的驱动打开数据库连接并配置连接池。
// 返回的 *gorm.DB 由调用方持有和关闭，包内不保存全局连接。
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := newDialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: log.NewGormLogger(cfg.LogLevel, cfg.SlowThreshold),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if cfg.Driver == "sqlite" {
		// SQLite 只允许单写者，内存库在多连接下也不共享
		sqlDB.SetMaxOpenConns(1)
	}

	log.Infof("%s database connected successfully", cfg.Driver)
	return db, nil
}

func newDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		// DATETIME(3) 不接受 DEFAULT CURRENT_TIMESTAMP，使用秒级精度
		precision := 0
		return mysql.New(mysql.Config{
			DSN:                      withMySQLParams(dsn),
			DefaultDatetimePrecision: &precision,
		}), nil
	case "sqlite":
		return sqlite.Open(withSQLiteForeignKeys(dsn)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// withMySQLParams 确保 DATETIME 能被扫描为 time.Time。
func withMySQLParams(dsn string) string {
	if strings.Contains(dsn, "parseTime=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "parseTime=true&loc=UTC"
}

// withSQLiteForeignKeys 为每个连接打开外键约束，否则 ON DELETE CASCADE 不生效。
func withSQLiteForeignKeys(dsn string) string {
	base, rawQuery, _ := strings.Cut(dsn, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return dsn
	}
	if query.Get("_foreign_keys") != "" || query.Get("_fk") != "" {
		return dsn
	}
	query.Set("_foreign_keys", "on")
	return base + "?" + query.Encode()
}

// Migrate 按给定顺序创建或更新表结构、外键、CHECK 约束和索引。
func Migrate(db *gorm.DB, models ...interface{}) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close 关闭底层连接池。
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
