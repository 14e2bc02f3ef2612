package log

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// GormLogger 把 gorm 的 SQL 日志转发到 zap。
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

// NewGormLogger 创建一个 gorm logger，level 取值 silent/error/warn/info。
func NewGormLogger(level string, slowThreshold time.Duration) gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: slowThreshold,
		LogLevel:      parseGormLevel(level),
	}
}

func parseGormLevel(level string) gormLogger.LogLevel {
	switch level {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		sugar.Infof("[gorm] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		sugar.Warnf("[gorm] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		sugar.Errorf("[gorm] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	// 记录不存在是正常分支，不按错误记录
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		sugar.Errorw("sql error", "file", file, "error", err, "elapsed", elapsed.String(), "rows", rows, "sql", sql)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		sugar.Warnw("slow sql", "file", file, "elapsed", elapsed.String(), "rows", rows, "sql", sql)
	case l.LogLevel >= gormLogger.Info:
		sugar.Debugw("sql", "file", file, "elapsed", elapsed.String(), "rows", rows, "sql", sql)
	}
}
