package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestOperationFromSQL(t *testing.T) {
	assert.Equal(t, "SELECT", operationFromSQL("SELECT * FROM payment_log"))
	assert.Equal(t, "SELECT", operationFromSQL("(select count(*) from payment_log)"))
	assert.Equal(t, "INSERT", operationFromSQL("INSERT INTO payment_comment VALUES (1)"))
	assert.Equal(t, "UNKNOWN", operationFromSQL(""))
}

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", TraceIDFromContext(ctx))
	assert.Equal(t, "", TraceIDFromContext(context.Background()))
}

func TestGormLoggerDropsParams(t *testing.T) {
	l := NewGormLogger(gormlogger.Warn, 0)
	sql, params := l.ParamsFilter(context.Background(), "SELECT ? ", "secret@example.com")
	assert.Equal(t, "SELECT ? ", sql)
	assert.Nil(t, params)
}

func TestGormLoggerTraceLogsErrors(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	l := NewGormLogger(gormlogger.Warn, 0)
	ctx := WithTraceID(context.Background(), "trace-1")
	l.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 1 }, assert.AnError)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "gorm.query", entry.Message)
	assert.Equal(t, "trace-1", entry.ContextMap()["trace_id"])
	assert.Equal(t, "SELECT", entry.ContextMap()["operation"])

	// record-not-found is not an error worth logging
	l.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gormlogger.ErrRecordNotFound)
	assert.Equal(t, 1, logs.Len())
}
