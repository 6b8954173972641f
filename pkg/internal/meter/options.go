package meter

import (
	"io"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

// WithLogger attaches loggers that receive stage summaries.
func WithLogger(loggers ...types.Logger) types.Option[*Meter] {
	return func(m *Meter) {
		m.ConnectLogger(loggers...)
	}
}

// WithOutput sets where Monitor prints progress lines. Nil disables printing.
func WithOutput(w io.Writer) types.Option[*Meter] {
	return func(m *Meter) {
		m.out = w
	}
}

// WithUpdateInterval sets the Monitor refresh period.
func WithUpdateInterval(d time.Duration) types.Option[*Meter] {
	return func(m *Meter) {
		if d > 0 {
			m.updateInterval = d
		}
	}
}

// WithComponentMetadata sets the meter's name and id.
func WithComponentMetadata(name, id string) types.Option[*Meter] {
	return func(m *Meter) {
		m.SetComponentMetadata(name, id)
	}
}
