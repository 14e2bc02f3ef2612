package log

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := sugar
	sugar = zap.New(core).Sugar()
	t.Cleanup(func() { sugar = prev })
	return logs
}

func TestErrorHelpers(t *testing.T) {
	logs := observe(t)

	Errorw("unexpected error", "op", "GetQuestion", "error", errors.New("boom"))
	Errorf("rollback failed: %v", "conn closed")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "GetQuestion", entries[0].ContextMap()["op"])
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
	assert.Equal(t, "rollback failed: conn closed", entries[1].Message)
}

func TestGormLogger_Trace(t *testing.T) {
	logs := observe(t)
	l := NewGormLogger("warn", 50*time.Millisecond)
	sql := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.Len())

	l.Trace(context.Background(), time.Now(), sql, errors.New("syntax error"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "sql error", logs.All()[0].Message)

	l.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "slow sql", logs.All()[1].Message)

	NewGormLogger("silent", 0).Trace(context.Background(), time.Now(), sql, errors.New("ignored"))
	assert.Equal(t, 2, logs.Len())
}
