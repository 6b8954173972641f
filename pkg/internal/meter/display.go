package meter

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/mem"
)

// StageSnapshot is the recorded state of one metric or stage.
type StageSnapshot struct {
	Name     string        `json:"name"`
	Count    uint64        `json:"count"`
	Total    uint64        `json:"total"`
	Duration time.Duration `json:"duration"`
}

// Snapshot is a point-in-time copy of the meter.
type Snapshot struct {
	Elapsed        time.Duration   `json:"elapsed"`
	Metrics        []StageSnapshot `json:"metrics"`
	Stages         []StageSnapshot `json:"stages"`
	PeakRAMPercent float64         `json:"peak_ram_percent"`
	PeakHeapBytes  uint64          `json:"peak_heap_bytes"`
}

func (m *Meter) sampleMemory() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	vm, err := mem.VirtualMemory()

	m.mu.Lock()
	defer m.mu.Unlock()
	if ms.HeapAlloc > m.peakHeapBytes {
		m.peakHeapBytes = ms.HeapAlloc
	}
	if err == nil && vm.UsedPercent > m.peakRAMPercent {
		m.peakRAMPercent = vm.UsedPercent
	}
}

// Snapshot returns the current counters, stage durations and memory peaks.
func (m *Meter) Snapshot() Snapshot {
	m.sampleMemory()

	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		Elapsed:        time.Since(m.startTime),
		PeakRAMPercent: m.peakRAMPercent,
		PeakHeapBytes:  m.peakHeapBytes,
	}
	for _, name := range m.metricNames {
		c := m.counts[name]
		var v uint64
		if c != nil {
			v = atomic.LoadUint64(c)
		}
		s.Metrics = append(s.Metrics, StageSnapshot{Name: name, Count: v, Total: m.totals[name]})
	}
	for _, name := range m.stageOrder {
		s.Stages = append(s.Stages, StageSnapshot{Name: name, Duration: m.durations[name]})
	}
	return s
}

// ProgressLine renders the one-line progress summary printed by Monitor.
func (m *Meter) ProgressLine() string {
	s := m.Snapshot()
	parts := make([]string, 0, len(s.Metrics)+1)
	parts = append(parts, "elapsed "+s.Elapsed.Truncate(time.Second).String())
	for _, metric := range s.Metrics {
		if metric.Total > 0 {
			parts = append(parts, fmt.Sprintf("%s %s/%s (%.1f%%)",
				metric.Name,
				humanize.Comma(int64(metric.Count)),
				humanize.Comma(int64(metric.Total)),
				float64(metric.Count)/float64(metric.Total)*100,
			))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", metric.Name, humanize.Comma(int64(metric.Count))))
	}
	return strings.Join(parts, " | ")
}

// Report writes the final stage summary.
func (m *Meter) Report(w io.Writer) {
	s := m.Snapshot()
	fmt.Fprintf(w, "Finished in %s\n", s.Elapsed.Truncate(time.Millisecond))
	for _, stage := range s.Stages {
		fmt.Fprintf(w, "  %-14s %s\n", stage.Name, stage.Duration.Truncate(time.Millisecond))
	}
	for _, metric := range s.Metrics {
		if metric.Total > 0 {
			fmt.Fprintf(w, "  %-20s %s of %s\n", metric.Name, humanize.Comma(int64(metric.Count)), humanize.Comma(int64(metric.Total)))
			continue
		}
		fmt.Fprintf(w, "  %-20s %s\n", metric.Name, humanize.Comma(int64(metric.Count)))
	}
	fmt.Fprintf(w, "  peak heap %s, peak system RAM %.1f%%\n", humanize.Bytes(s.PeakHeapBytes), s.PeakRAMPercent)
}

// Monitor prints a progress line every update interval until ctx is done.
func (m *Meter) Monitor(ctx context.Context) {
	if m.out == nil {
		<-ctx.Done()
		return
	}
	ticker := time.NewTicker(m.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprint(m.out, "\r\033[2K")
			return
		case <-ticker.C:
			fmt.Fprintf(m.out, "\r\033[2K%s", m.ProgressLine())
		}
	}
}
