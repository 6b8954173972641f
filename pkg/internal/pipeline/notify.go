package pipeline

import "github.com/joeydtaylor/electrode/pkg/internal/types"

// NotifyLoggers sends msg to every attached logger at or below level.
func (p *Pipeline) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	p.loggersLock.Lock()
	loggers := make([]types.Logger, len(p.loggers))
	copy(loggers, p.loggers)
	p.loggersLock.Unlock()

	for _, logger := range loggers {
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
