package internallogger

import (
	"fmt"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// maxLoggedInts caps how many entries of a channel order or length list are
// written; longer slices are logged as their length plus a prefix.
const maxLoggedInts = 16

func encoderConfig(development bool) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		TimeKey:       logschema.FieldTimestamp,
		LevelKey:      logschema.FieldLevel,
		NameKey:       logschema.FieldLogger,
		CallerKey:     logschema.FieldCaller,
		MessageKey:    logschema.FieldMessage,
		StacktraceKey: logschema.FieldStack,
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.UTC().Format(time.RFC3339Nano))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if development {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return cfg
}

func newEncoder(format string, cfg zapcore.EncoderConfig) (zapcore.Encoder, error) {
	switch format {
	case "", "json":
		return zapcore.NewJSONEncoder(cfg), nil
	case "console":
		return zapcore.NewConsoleEncoder(cfg), nil
	}
	return nil, fmt.Errorf("unsupported sink format: %s", format)
}

// field converts one key/value pair, flattening component metadata and
// shortening long channel lists.
func field(key string, value interface{}) zap.Field {
	switch v := value.(type) {
	case types.ComponentMetadata:
		return zap.Any(key, componentToLogMap(v))
	case *types.ComponentMetadata:
		if v == nil {
			return zap.Any(key, nil)
		}
		return zap.Any(key, componentToLogMap(*v))
	case error:
		return zap.NamedError(key, v)
	case time.Duration:
		return zap.Duration(key, v)
	case types.OrderKey:
		return zap.String(key, v.ArtifactName())
	case types.ChannelOrder:
		return intsField(key, v)
	case []int:
		return intsField(key, v)
	case fmt.Stringer:
		return zap.Stringer(key, v)
	}
	return zap.Any(key, value)
}

func intsField(key string, v []int) zap.Field {
	if len(v) <= maxLoggedInts {
		return zap.Ints(key, v)
	}
	return zap.Any(key, map[string]interface{}{
		"len":  len(v),
		"head": v[:maxLoggedInts],
	})
}

func componentToLogMap(meta types.ComponentMetadata) map[string]string {
	return map[string]string{
		"id":   meta.ID,
		"type": meta.Type,
		"name": meta.Name,
	}
}

func fieldsFromMap(fields map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		if key != "" {
			out = append(out, field(key, value))
		}
	}
	return out
}
