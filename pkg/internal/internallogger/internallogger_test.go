package internallogger_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeydtaylor/electrode/pkg/internal/internallogger"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/logschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_DefaultLevel(t *testing.T) {
	logger := internallogger.NewLogger()
	assert.Equal(t, types.InfoLevel, logger.GetLevel())
}

func TestNewLogger_WithLevel(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))
	assert.Equal(t, types.DebugLevel, logger.GetLevel())

	logger = internallogger.NewLogger(internallogger.LoggerWithLevel("unknown"))
	assert.Equal(t, types.InfoLevel, logger.GetLevel(), "unknown level falls back to info")
}

func TestLogger_SetLevel(t *testing.T) {
	logger := internallogger.NewLogger()
	logger.SetLevel(types.ErrorLevel)
	assert.Equal(t, types.ErrorLevel, logger.GetLevel())
}

func TestLogger_AddRemoveListSinks(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))
	path := filepath.Join(t.TempDir(), "logs", "electrode.log")

	require.NoError(t, logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{"path": path}}))
	_, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, logger.AddSink("stdout", types.SinkConfig{Type: "stdout"}))

	sinks, err := logger.ListSinks()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"file", "stdout"}, sinks)

	require.NoError(t, logger.RemoveSink("stdout"))
	assert.Error(t, logger.RemoveSink("missing"))
	require.NoError(t, logger.RemoveSink("file"))
}

func TestLogger_FileSinkWritesSchemaFields(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))
	path := filepath.Join(t.TempDir(), "electrode.log")
	require.NoError(t, logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{"path": path}}))

	meta := types.ComponentMetadata{ID: "l-1", Type: "LOADER", Name: "raw"}
	logger.Info("stage complete",
		logschema.FieldComponent, meta,
		logschema.FieldStage, "load",
		logschema.FieldError, errors.New("boom"),
	)
	require.NoError(t, logger.RemoveSink("file"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(raw)
	assert.True(t, strings.Contains(line, `"`+logschema.FieldSchema+`":"`+logschema.SchemaID+`"`), line)
	assert.Contains(t, line, `"msg":"stage complete"`)
	assert.Contains(t, line, `"stage":"load"`)
	assert.Contains(t, line, `"LOADER"`)
	assert.Contains(t, line, `"boom"`)
}

func TestLogger_ConsoleSinkFormat(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithEncoding("console"))
	path := filepath.Join(t.TempDir(), "console.log")
	require.NoError(t, logger.AddSink("human", types.SinkConfig{
		Type:   "file",
		Config: map[string]interface{}{"path": path, "format": "console"},
	}))
	logger.Warn("channels skipped", logschema.FieldStage, "load")
	require.NoError(t, logger.RemoveSink("human"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(raw)
	assert.Contains(t, line, "\tchannels skipped\t")
	assert.False(t, strings.HasPrefix(line, "{"), line)

	assert.Error(t, logger.AddSink("bad", types.SinkConfig{
		Type:   "stderr",
		Config: map[string]interface{}{"format": "xml"},
	}))
	require.NoError(t, logger.AddSink("err", types.SinkConfig{Type: "stderr"}))
	sinks, err := logger.ListSinks()
	require.NoError(t, err)
	assert.Contains(t, sinks, "err")
}

func TestLogger_AddSinkInvalidConfig(t *testing.T) {
	logger := internallogger.NewLogger()

	assert.Error(t, logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{}}))
	assert.Error(t, logger.AddSink("network", types.SinkConfig{Type: "network"}))
}

func TestLogger_LogHandlesOddKeys(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))

	logger.Log(types.InfoLevel, "odd keys", "key", "value", "orphan")
	logger.Log(types.InfoLevel, "non-string key", 123, "value")
}

func TestLogger_Flush(t *testing.T) {
	logger := internallogger.NewLogger()
	assert.NoError(t, logger.Flush())
}

func TestLogger_OptionsCoverage(t *testing.T) {
	logger := internallogger.NewLogger(
		internallogger.LoggerWithDevelopment(true),
		internallogger.LoggerWithFields(map[string]interface{}{"run": "test", "": "dropped"}),
		internallogger.LoggerWithSchema("electrode.log.test"),
		internallogger.LoggerWithoutCaller(),
		internallogger.ZapAdapterWithCallerSkip(1),
	)
	logger.Info("options")
}
