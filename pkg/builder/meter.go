package builder

import (
	"io"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/meter"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

// Meter is the concrete progress meter.
type Meter = meter.Meter

// MeterSnapshot is a point-in-time copy of a meter's readings.
type MeterSnapshot = meter.Snapshot

// Metric names reported by the preprocessing stages.
const (
	MetricChannelsLoaded   = types.MetricChannelsLoaded
	MetricProfilesComputed = types.MetricProfilesComputed
	MetricCorrelationPairs = types.MetricCorrelationPairs
	MetricOrdersComputed   = types.MetricOrdersComputed
	MetricArtifactsWritten = types.MetricArtifactsWritten
	MetricBytesWritten     = types.MetricBytesWritten
)

func NewMeter(options ...types.Option[*meter.Meter]) *meter.Meter {
	return meter.NewMeter(options...)
}

func MeterWithLogger(loggers ...types.Logger) types.Option[*meter.Meter] {
	return meter.WithLogger(loggers...)
}

// MeterWithOutput sets where progress lines go; nil disables them.
func MeterWithOutput(w io.Writer) types.Option[*meter.Meter] {
	return meter.WithOutput(w)
}

// MeterWithUpdateInterval sets how often the progress line refreshes.
func MeterWithUpdateInterval(d time.Duration) types.Option[*meter.Meter] {
	return meter.WithUpdateInterval(d)
}

func MeterWithComponentMetadata(name string, id string) types.Option[*meter.Meter] {
	return meter.WithComponentMetadata(name, id)
}
