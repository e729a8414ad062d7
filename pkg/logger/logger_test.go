package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockLogLevel int8 = 0 // zapcore.InfoLevel

func TestNewWritesJSONWithBuildInfo(t *testing.T) {
	var buf bytes.Buffer
	zl := New(mockLogLevel, &buf)
	zl.Info("loaded")
	require.NoError(t, zl.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loaded", entry[MessageKey])
	assert.Equal(t, "jview", entry[BinaryKey])
	assert.Contains(t, entry, VersionKey)
	assert.Contains(t, entry, TimeStampKey)
}

func TestNewRespectsLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   int8
		verbose bool
	}{
		{"info hides debug", 0, false},
		{"debug shows debug", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			lgr := zapr.NewLogger(New(tt.level, &buf))
			lgr.V(1).Info("details")
			assert.Equal(t, tt.verbose, buf.Len() > 0)
		})
	}
}

func TestGetReturnsSameInstanceOnSubsequentCalls(t *testing.T) {
	logger1 := Get(mockLogLevel)
	logger2 := Get(-1)
	require.NotNil(t, logger1)
	assert.Same(t, logger1, logger2)
}

func TestGetReturnsNoopLoggerIfGlobalLoggerNil(t *testing.T) {
	Get(mockLogLevel)
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	assert.Same(t, &defaultNoopLogger, Get(mockLogLevel))
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	logger := Get(mockLogLevel)

	withLogger := WithLogger(ctx, logger)
	assert.Same(t, logger, FromContext(withLogger))
	assert.Equal(t, withLogger, WithLogger(withLogger, logger), "same logger keeps the context")

	other := logr.Discard()
	replaced := WithLogger(withLogger, &other)
	assert.Same(t, &other, FromContext(replaced))
}

func TestFromContextFallbacks(t *testing.T) {
	global := Get(mockLogLevel)
	assert.Same(t, global, FromContext(context.Background()))

	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()
	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
}

func TestSyncDoesNotPanicWhenGlobalZapLoggerIsNil(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	assert.NotPanics(t, Sync)
}

func TestGetNoopLogger(t *testing.T) {
	got := GetNoopLogger()
	assert.Same(t, &defaultNoopLogger, got)
	assert.NotPanics(t, func() { got.Info("nothing") })
}

func TestWithValuesReturnsNewLogger(t *testing.T) {
	logger := Get(mockLogLevel)
	assert.NotSame(t, logger, WithValues(logger, InputKey, "doc.json"))
	assert.NotSame(t, logger, WithValues(logger))
}
