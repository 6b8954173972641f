package meter

import (
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/logschema"
)

func (m *Meter) counterLocked(name string) *uint64 {
	c, ok := m.counts[name]
	if !ok {
		c = new(uint64)
		m.counts[name] = c
		m.metricNames = append(m.metricNames, name)
	}
	return c
}

// AddMetric registers a metric with an expected total, resetting its count.
func (m *Meter) AddMetric(name string, total uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	atomic.StoreUint64(m.counterLocked(name), 0)
	m.totals[name] = total
}

// AddToMetricTotal raises a metric's expected total.
func (m *Meter) AddToMetricTotal(name string, additional uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counterLocked(name)
	m.totals[name] += additional
}

// IncrementCount adds one to a metric.
func (m *Meter) IncrementCount(name string) {
	m.AddCount(name, 1)
}

// AddCount adds n to a metric, registering it on first use.
func (m *Meter) AddCount(name string, n uint64) {
	m.mu.Lock()
	c := m.counterLocked(name)
	m.mu.Unlock()
	atomic.AddUint64(c, n)
}

// GetMetricCount returns the current count for a metric.
func (m *Meter) GetMetricCount(name string) uint64 {
	m.mu.Lock()
	c, ok := m.counts[name]
	m.mu.Unlock()
	if !ok {
		return 0
	}
	return atomic.LoadUint64(c)
}

// GetMetricTotal returns the expected total for a metric.
func (m *Meter) GetMetricTotal(name string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals[name]
}

// GetMetricPercentage returns count/total as a percentage, or 0 without a total.
func (m *Meter) GetMetricPercentage(name string) float64 {
	total := m.GetMetricTotal(name)
	if total == 0 {
		return 0
	}
	return float64(m.GetMetricCount(name)) / float64(total) * 100
}

// GetMetricNames returns registered metric names in registration order.
func (m *Meter) GetMetricNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.metricNames))
	copy(out, m.metricNames)
	return out
}

// StartTimer starts the named stage timer.
func (m *Meter) StartTimer(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startTimes[name] = time.Now()
}

// StopTimer stops the named stage timer and records its duration.
func (m *Meter) StopTimer(name string) time.Duration {
	m.mu.Lock()
	start, ok := m.startTimes[name]
	if !ok {
		m.mu.Unlock()
		return 0
	}
	d := time.Since(start)
	delete(m.startTimes, name)
	if _, seen := m.durations[name]; !seen {
		m.stageOrder = append(m.stageOrder, name)
	}
	m.durations[name] = d
	m.mu.Unlock()

	m.sampleMemory()
	m.NotifyLoggers(types.InfoLevel, "stage timed",
		logschema.FieldComponent, m.componentMetadata,
		logschema.FieldStage, name,
		"duration", d.String(),
	)
	return d
}

// IsTimerRunning reports whether the named timer has been started and not stopped.
func (m *Meter) IsTimerRunning(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.startTimes[name]
	return ok
}

// StageDuration returns the recorded duration of a stopped stage.
func (m *Meter) StageDuration(name string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.durations[name]
	return d, ok
}

// ResetMetrics clears counters, totals and timings.
func (m *Meter) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts = make(map[string]*uint64)
	m.totals = make(map[string]uint64)
	m.metricNames = nil
	m.startTimes = make(map[string]time.Time)
	m.durations = make(map[string]time.Duration)
	m.stageOrder = nil
	m.startTime = time.Now()
}

// GetComponentMetadata returns the meter metadata.
func (m *Meter) GetComponentMetadata() types.ComponentMetadata {
	return m.componentMetadata
}

// SetComponentMetadata overrides name/id while preserving the component type.
func (m *Meter) SetComponentMetadata(name string, id string) {
	m.componentMetadata = types.ComponentMetadata{Name: name, ID: id, Type: m.componentMetadata.Type}
}
