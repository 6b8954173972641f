// Package store persists named pipeline artifacts on the local filesystem or
// in an S3 bucket.
package store

import (
	"errors"
	"sync"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

// ErrNotFound is returned when an artifact does not exist.
var ErrNotFound = errors.New("store: artifact not found")

// NPY returns the object name of an .npy artifact.
func NPY(name string) string { return name + ".npy" }

// base carries the metadata and loggers shared by every store.
type base struct {
	componentMetadata types.ComponentMetadata
	loggers           []types.Logger
	loggersLock       sync.Mutex
}

// GetComponentMetadata returns the store metadata.
func (b *base) GetComponentMetadata() types.ComponentMetadata { return b.componentMetadata }

// SetComponentMetadata overrides name/id while preserving the component type.
func (b *base) SetComponentMetadata(name, id string) {
	b.componentMetadata = types.ComponentMetadata{Name: name, ID: id, Type: b.componentMetadata.Type}
}

// ConnectLogger attaches loggers, ignoring nils.
func (b *base) ConnectLogger(loggers ...types.Logger) {
	b.loggersLock.Lock()
	defer b.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			b.loggers = append(b.loggers, l)
		}
	}
}

// NotifyLoggers sends a structured message to all attached loggers.
func (b *base) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	b.loggersLock.Lock()
	loggers := make([]types.Logger, len(b.loggers))
	copy(loggers, b.loggers)
	b.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}
