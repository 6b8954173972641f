package loader

import "github.com/joeydtaylor/electrode/pkg/internal/types"

// GetComponentMetadata returns the loader metadata.
func (l *Loader) GetComponentMetadata() types.ComponentMetadata { return l.componentMetadata }

// SetComponentMetadata overrides name/id while preserving the component type.
func (l *Loader) SetComponentMetadata(name, id string) {
	l.componentMetadata = types.ComponentMetadata{
		Name: name,
		ID:   id,
		Type: l.componentMetadata.Type,
	}
}

// ConnectLogger attaches loggers, ignoring nils.
func (l *Loader) ConnectLogger(loggers ...types.Logger) {
	l.loggersLock.Lock()
	defer l.loggersLock.Unlock()
	for _, lg := range loggers {
		if lg != nil {
			l.loggers = append(l.loggers, lg)
		}
	}
}
