// Package cluster orders channels by agglomerative hierarchical clustering of
// their correlation profiles so that correlated channels end up adjacent.
package cluster

import (
	"sync"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/utils"
)

// Orderer implements types.Orderer.
type Orderer struct {
	componentMetadata types.ComponentMetadata
	loggers           []types.Logger
	loggersLock       sync.Mutex

	methods       []types.LinkageMethod
	dissimilarity types.Dissimilarity
	meter         types.Meter
}

// NewOrderer creates an Orderer producing all four methods over profile distances.
func NewOrderer(options ...types.Option[*Orderer]) *Orderer {
	o := &Orderer{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "CLUSTER_ORDERER",
		},
		loggers:       make([]types.Logger, 0),
		methods:       types.Methods(),
		dissimilarity: types.DissimilarityProfile,
	}
	for _, opt := range options {
		opt(o)
	}
	return o
}

// SetMethods restricts OrderAll to the given linkage methods.
func (o *Orderer) SetMethods(methods ...types.LinkageMethod) {
	if len(methods) > 0 {
		o.methods = append([]types.LinkageMethod(nil), methods...)
	}
}

// SetDissimilarity selects how correlations become distances.
func (o *Orderer) SetDissimilarity(d types.Dissimilarity) {
	if d != "" {
		o.dissimilarity = d
	}
}

// Dissimilarity returns the configured distance mode.
func (o *Orderer) Dissimilarity() types.Dissimilarity { return o.dissimilarity }

// SetMeter attaches a meter that counts produced orders.
func (o *Orderer) SetMeter(m types.Meter) { o.meter = m }

// Methods returns the linkage methods OrderAll produces.
func (o *Orderer) Methods() []types.LinkageMethod {
	return append([]types.LinkageMethod(nil), o.methods...)
}

// GetComponentMetadata returns the orderer metadata.
func (o *Orderer) GetComponentMetadata() types.ComponentMetadata { return o.componentMetadata }

// SetComponentMetadata overrides name/id while preserving the component type.
func (o *Orderer) SetComponentMetadata(name, id string) {
	o.componentMetadata = types.ComponentMetadata{Name: name, ID: id, Type: o.componentMetadata.Type}
}

// ConnectLogger attaches loggers, ignoring nils.
func (o *Orderer) ConnectLogger(loggers ...types.Logger) {
	o.loggersLock.Lock()
	defer o.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			o.loggers = append(o.loggers, l)
		}
	}
}

// NotifyLoggers sends a structured message to all attached loggers.
func (o *Orderer) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	o.loggersLock.Lock()
	loggers := make([]types.Logger, len(o.loggers))
	copy(loggers, o.loggers)
	o.loggersLock.Unlock()

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
