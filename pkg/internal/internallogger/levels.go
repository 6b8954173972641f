package internallogger

import (
	"strings"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a level name to a types.LogLevel. ok is false for unknown
// names, which map to InfoLevel.
func ParseLevel(levelStr string) (level types.LogLevel, ok bool) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return types.DebugLevel, true
	case "info", "":
		return types.InfoLevel, true
	case "warn", "warning":
		return types.WarnLevel, true
	case "error":
		return types.ErrorLevel, true
	case "dpanic":
		return types.DPanicLevel, true
	case "panic":
		return types.PanicLevel, true
	case "fatal":
		return types.FatalLevel, true
	}
	return types.InfoLevel, false
}

// ConvertLevel converts a types.LogLevel to a zap level.
func ConvertLevel(level types.LogLevel) zapcore.Level {
	switch level {
	case types.DebugLevel:
		return zapcore.DebugLevel
	case types.InfoLevel:
		return zapcore.InfoLevel
	case types.WarnLevel:
		return zapcore.WarnLevel
	case types.ErrorLevel:
		return zapcore.ErrorLevel
	case types.DPanicLevel:
		return zapcore.DPanicLevel
	case types.PanicLevel:
		return zapcore.PanicLevel
	case types.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func convertZapLevel(level zapcore.Level) types.LogLevel {
	switch level {
	case zapcore.DebugLevel:
		return types.DebugLevel
	case zapcore.InfoLevel:
		return types.InfoLevel
	case zapcore.WarnLevel:
		return types.WarnLevel
	case zapcore.ErrorLevel:
		return types.ErrorLevel
	case zapcore.DPanicLevel:
		return types.DPanicLevel
	case zapcore.PanicLevel:
		return types.PanicLevel
	case zapcore.FatalLevel:
		return types.FatalLevel
	default:
		return types.InfoLevel
	}
}

func parseLogLevel(levelStr string) types.LogLevel {
	level, _ := ParseLevel(levelStr)
	return level
}
