package meter_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/meter"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLogger struct {
	level     types.LogLevel
	infoCount int32
	lastMsg   atomic.Value
}

func (s *stubLogger) GetLevel() types.LogLevel      { return s.level }
func (s *stubLogger) SetLevel(level types.LogLevel) { s.level = level }
func (s *stubLogger) Debug(string, ...interface{})  {}
func (s *stubLogger) Info(msg string, _ ...interface{}) {
	atomic.AddInt32(&s.infoCount, 1)
	s.lastMsg.Store(msg)
}
func (s *stubLogger) Warn(string, ...interface{})            {}
func (s *stubLogger) Error(string, ...interface{})           {}
func (s *stubLogger) DPanic(string, ...interface{})          {}
func (s *stubLogger) Panic(string, ...interface{})           {}
func (s *stubLogger) Fatal(string, ...interface{})           {}
func (s *stubLogger) Flush() error                           { return nil }
func (s *stubLogger) AddSink(string, types.SinkConfig) error { return nil }
func (s *stubLogger) RemoveSink(string) error                { return nil }
func (s *stubLogger) ListSinks() ([]string, error)           { return nil, nil }

func TestCountsAndTotals(t *testing.T) {
	m := meter.NewMeter(meter.WithOutput(nil))

	m.AddMetric(types.MetricCorrelationPairs, 10)
	m.IncrementCount(types.MetricCorrelationPairs)
	m.AddCount(types.MetricCorrelationPairs, 4)
	m.AddToMetricTotal(types.MetricCorrelationPairs, 10)

	assert.Equal(t, uint64(5), m.GetMetricCount(types.MetricCorrelationPairs))
	assert.Equal(t, uint64(20), m.GetMetricTotal(types.MetricCorrelationPairs))
	assert.InDelta(t, 25.0, m.GetMetricPercentage(types.MetricCorrelationPairs), 1e-9)
	assert.Zero(t, m.GetMetricPercentage("unknown"))

	m.ResetMetrics()
	assert.Zero(t, m.GetMetricCount(types.MetricCorrelationPairs))
	assert.Empty(t, m.GetMetricNames())
}

func TestConcurrentIncrements(t *testing.T) {
	m := meter.NewMeter(meter.WithOutput(nil))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.IncrementCount(types.MetricCorrelationPairs)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(800), m.GetMetricCount(types.MetricCorrelationPairs))
}

func TestTimersRecordStages(t *testing.T) {
	log := &stubLogger{level: types.InfoLevel}
	m := meter.NewMeter(meter.WithOutput(nil), meter.WithLogger(log))

	assert.Zero(t, m.StopTimer("never-started"))

	m.StartTimer("load")
	assert.True(t, m.IsTimerRunning("load"))
	time.Sleep(2 * time.Millisecond)
	d := m.StopTimer("load")
	assert.False(t, m.IsTimerRunning("load"))
	assert.Greater(t, d, time.Duration(0))

	got, ok := m.StageDuration("load")
	require.True(t, ok)
	assert.Equal(t, d, got)
	assert.Equal(t, int32(1), atomic.LoadInt32(&log.infoCount))

	snap := m.Snapshot()
	require.Len(t, snap.Stages, 1)
	assert.Equal(t, "load", snap.Stages[0].Name)
}

func TestReportAndProgressLine(t *testing.T) {
	m := meter.NewMeter(meter.WithOutput(nil))
	m.AddMetric(types.MetricCorrelationPairs, 2016)
	m.AddCount(types.MetricCorrelationPairs, 1008)
	m.AddCount(types.MetricArtifactsWritten, 3)
	m.StartTimer("correlate")
	m.StopTimer("correlate")

	line := m.ProgressLine()
	assert.Contains(t, line, "correlation_pairs 1,008/2,016 (50.0%)")
	assert.Contains(t, line, "artifacts_written 3")

	var buf bytes.Buffer
	m.Report(&buf)
	assert.Contains(t, buf.String(), "correlate")
	assert.Contains(t, buf.String(), "peak heap")
}

func TestMonitorStopsOnCancel(t *testing.T) {
	var buf safeBuffer
	m := meter.NewMeter(meter.WithOutput(&buf), meter.WithUpdateInterval(time.Millisecond))
	m.AddCount(types.MetricChannelsLoaded, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Monitor(ctx)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not exit on cancel")
	}
	assert.True(t, strings.Contains(buf.String(), "channels_loaded"))
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
