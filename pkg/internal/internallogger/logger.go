package internallogger

import (
	"os"
	"sync"

	"github.com/joeydtaylor/electrode/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOption mutates the zap config, the level and the caller skip before the logger is built.
type LoggerOption func(*zap.Config, *zapcore.Level, *int)

// ZapLoggerAdapter implements types.Logger on top of zap with a stdout base core
// and any number of named sinks. Every sink shares the adapter's level.
type ZapLoggerAdapter struct {
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
	encConfig   zapcore.EncoderConfig
	callerDepth int
	callerOn    bool
	baseCore    zapcore.Core
	baseFields  []zap.Field
	mu          sync.Mutex
	sinks       map[string]sinkEntry
}

// NewLogger initializes a new ZapLoggerAdapter with configurable options.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	config := zap.NewProductionConfig()
	config.InitialFields = map[string]interface{}{
		logschema.FieldSchema: logschema.SchemaID,
	}
	level := zapcore.InfoLevel
	callerDepth := 1

	for _, option := range options {
		option(&config, &level, &callerDepth)
	}

	atomicLevel := zap.NewAtomicLevelAt(level)
	encConfig := encoderConfig(config.Development)
	enc, err := newEncoder(config.Encoding, encConfig)
	if err != nil {
		enc = zapcore.NewJSONEncoder(encConfig)
	}

	z := &ZapLoggerAdapter{
		atomicLevel: atomicLevel,
		encConfig:   encConfig,
		callerDepth: callerDepth,
		callerOn:    !config.DisableCaller,
		baseCore:    zapcore.NewCore(enc, zapcore.Lock(os.Stdout), atomicLevel),
		baseFields:  fieldsFromMap(config.InitialFields),
		sinks:       make(map[string]sinkEntry),
	}

	z.mu.Lock()
	z.rebuildLoggerLocked()
	z.mu.Unlock()
	return z
}
