package types

import "time"

// Metric names reported by the preprocessing stages.
const (
	MetricChannelsLoaded   = "channels_loaded"
	MetricProfilesComputed = "profiles_computed"
	MetricCorrelationPairs = "correlation_pairs"
	MetricOrdersComputed   = "orders_computed"
	MetricArtifactsWritten = "artifacts_written"
	MetricBytesWritten     = "bytes_written"
)

// Meter tracks per-stage counters and timers for long preprocessing runs.
type Meter interface {
	AddMetric(name string, total uint64)
	AddToMetricTotal(name string, additional uint64)
	IncrementCount(name string)
	AddCount(name string, n uint64)
	GetMetricCount(name string) uint64
	GetMetricTotal(name string) uint64
	StartTimer(name string)
	StopTimer(name string) time.Duration
}
