package loader

import "github.com/joeydtaylor/electrode/pkg/internal/types"

func (l *Loader) snapshotLoggers() []types.Logger {
	l.loggersLock.Lock()
	defer l.loggersLock.Unlock()

	if len(l.loggers) == 0 {
		return nil
	}
	loggers := make([]types.Logger, len(l.loggers))
	copy(loggers, l.loggers)
	return loggers
}

// NotifyLoggers sends a structured message to all attached loggers.
func (l *Loader) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	for _, logger := range l.snapshotLoggers() {
		if logger == nil || logger.GetLevel() > level {
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
