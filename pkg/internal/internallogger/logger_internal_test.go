package internallogger

import (
	"testing"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLog_WritesFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	z := &ZapLoggerAdapter{logger: zap.New(core)}

	meta := types.ComponentMetadata{ID: "c-1", Type: "CLUSTER", Name: "orderer"}
	z.Log(types.InfoLevel, "hello", "component", meta, "count", 3)

	entries := recorded.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, int64(3), ctx["count"])
	assert.Equal(t, map[string]string{"id": "c-1", "type": "CLUSTER", "name": "orderer"}, ctx["component"])
}

func TestLog_IgnoresNonStringKeys(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	z := &ZapLoggerAdapter{logger: zap.New(core)}

	z.Log(types.InfoLevel, "msg", 42, "v", "ok", "yes")
	entries := recorded.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Len(t, ctx, 1)
	assert.Equal(t, "yes", ctx["ok"])
}

func TestLog_RespectsCoreLevel(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	z := &ZapLoggerAdapter{logger: zap.New(core)}

	z.Log(types.InfoLevel, "dropped")
	z.Log(types.ErrorLevel, "kept")
	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Message)
}

func TestLog_NilLoggerNoPanic(t *testing.T) {
	z := &ZapLoggerAdapter{}
	assert.NotPanics(t, func() { z.Log(types.InfoLevel, "nothing") })
}

func TestFlush_NilLogger(t *testing.T) {
	z := &ZapLoggerAdapter{}
	assert.NoError(t, z.Flush())
}

func TestConvertLevel_Defaults(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, ConvertLevel(types.LogLevel(99)))
	assert.Equal(t, types.InfoLevel, convertZapLevel(zapcore.Level(42)))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, types.WarnLevel, parseLogLevel("WARNING"))
	assert.Equal(t, types.ErrorLevel, parseLogLevel(" error "))
	assert.Equal(t, types.InfoLevel, parseLogLevel("nope"))

	level, ok := ParseLevel("dpanic")
	assert.True(t, ok)
	assert.Equal(t, types.DPanicLevel, level)
	_, ok = ParseLevel("loud")
	assert.False(t, ok)
	_, ok = ParseLevel("")
	assert.True(t, ok)
}

func TestField_DomainValues(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	z := &ZapLoggerAdapter{logger: zap.New(core)}

	long := make(types.ChannelOrder, 40)
	for i := range long {
		long[i] = i + 1
	}
	var nilMeta *types.ComponentMetadata
	z.Log(types.InfoLevel, "order",
		"key", types.OrderKey{Formula: types.FormulaKendall, Method: types.MethodWard},
		"short", types.ChannelOrder{3, 1, 2},
		"long", long,
		"elapsed", 1500*time.Millisecond,
		"owner", nilMeta,
	)

	entries := recorded.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, types.OrderKey{Formula: types.FormulaKendall, Method: types.MethodWard}.ArtifactName(), ctx["key"])
	assert.Len(t, ctx["short"], 3)
	assert.Equal(t, 1500*time.Millisecond, ctx["elapsed"])
	assert.Nil(t, ctx["owner"])

	summary, ok := ctx["long"].(map[string]interface{})
	require.True(t, ok, "%T", ctx["long"])
	assert.Equal(t, 40, summary["len"])
	assert.Len(t, summary["head"], maxLoggedInts)
}

func TestNewEncoder_Formats(t *testing.T) {
	cfg := encoderConfig(true)
	_, err := newEncoder("console", cfg)
	assert.NoError(t, err)
	_, err = newEncoder("", cfg)
	assert.NoError(t, err)
	_, err = newEncoder("xml", cfg)
	assert.Error(t, err)
}
