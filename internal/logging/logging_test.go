package logging

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
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	dev := New("development")
	require.NotNil(t, dev)
	assert.True(t, Enabled(dev, zapcore.DebugLevel))

	prod := New("production")
	require.NotNil(t, prod)
	assert.False(t, Enabled(prod, zapcore.DebugLevel))
	assert.True(t, Enabled(prod, zapcore.InfoLevel))
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewGormLogger(zap.New(core), gormlogger.Warn, 10*time.Millisecond)
	ctx := context.Background()
	query := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(ctx, time.Now(), query, errors.New("boom"))
	l.Trace(ctx, time.Now(), query, gormlogger.ErrRecordNotFound)
	l.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	l.Trace(ctx, time.Now(), query, nil)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "query failed", entries[0].Message)
	assert.Equal(t, "SELECT 1", entries[0].ContextMap()["sql"])
	assert.Equal(t, "slow query", entries[1].Message)
	assert.Equal(t, "gorm", entries[1].LoggerName)
}

func TestGormLogger_LogMode(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := NewGormLogger(zap.New(core), gormlogger.Silent, 0)
	ctx := context.Background()

	base.Info(ctx, "hidden %d", 1)
	base.LogMode(gormlogger.Info).Info(ctx, "shown %d", 2)
	base.LogMode(gormlogger.Info).Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 2", 0 }, nil)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "shown 2", entries[0].Message)
	assert.Equal(t, "query", entries[1].Message)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, gormlogger.Info, LevelFor("development"))
	assert.Equal(t, gormlogger.Warn, LevelFor("production"))
}
