// Package correlation computes channel-by-channel Pearson, Spearman and Kendall
// tau-b matrices over a types.SignalMatrix. Every row is truncated to the
// shortest native channel length before comparison.
package correlation

import (
	"sync"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/utils"
)

// Engine implements types.CorrelationEngine.
type Engine struct {
	componentMetadata types.ComponentMetadata
	loggers           []types.Logger
	loggersLock       sync.Mutex

	workers  int
	formulas []types.Formula
	meter    types.Meter
}

// NewEngine creates an Engine that computes all three formulas sequentially.
func NewEngine(options ...types.Option[*Engine]) *Engine {
	e := &Engine{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "CORRELATION_ENGINE",
		},
		loggers:  make([]types.Logger, 0),
		workers:  1,
		formulas: types.Formulas(),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// SetWorkers bounds the number of rows computed concurrently. Values below 1 mean 1.
func (e *Engine) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	e.workers = n
}

// SetFormulas restricts which formulas ComputeAll produces.
func (e *Engine) SetFormulas(formulas ...types.Formula) {
	if len(formulas) > 0 {
		e.formulas = append([]types.Formula(nil), formulas...)
	}
}

// SetMeter attaches a meter that counts computed pairs.
func (e *Engine) SetMeter(m types.Meter) { e.meter = m }

// Workers returns the configured worker bound.
func (e *Engine) Workers() int { return e.workers }

// GetComponentMetadata returns the engine metadata.
func (e *Engine) GetComponentMetadata() types.ComponentMetadata { return e.componentMetadata }

// SetComponentMetadata overrides name/id while preserving the component type.
func (e *Engine) SetComponentMetadata(name, id string) {
	e.componentMetadata = types.ComponentMetadata{Name: name, ID: id, Type: e.componentMetadata.Type}
}

// ConnectLogger attaches loggers, ignoring nils.
func (e *Engine) ConnectLogger(loggers ...types.Logger) {
	e.loggersLock.Lock()
	defer e.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			e.loggers = append(e.loggers, l)
		}
	}
}

// NotifyLoggers sends a structured message to all attached loggers.
func (e *Engine) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	e.loggersLock.Lock()
	loggers := make([]types.Logger, len(e.loggers))
	copy(loggers, e.loggers)
	e.loggersLock.Unlock()

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
