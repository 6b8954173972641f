// Package meter records stage timings, item counters and memory usage for
// preprocessing runs and prints a progress line while a run is in flight.
package meter

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/utils"
)

const defaultUpdateInterval = time.Second

// Meter implements types.Meter.
type Meter struct {
	componentMetadata types.ComponentMetadata
	mu                sync.Mutex
	counts            map[string]*uint64
	totals            map[string]uint64
	metricNames       []string
	startTimes        map[string]time.Time
	durations         map[string]time.Duration
	stageOrder        []string
	startTime         time.Time
	peakRAMPercent    float64
	peakHeapBytes     uint64
	updateInterval    time.Duration
	out               io.Writer

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewMeter creates a meter that writes progress lines to stderr.
func NewMeter(options ...types.Option[*Meter]) *Meter {
	m := &Meter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "METER",
		},
		counts:         make(map[string]*uint64),
		totals:         make(map[string]uint64),
		startTimes:     make(map[string]time.Time),
		durations:      make(map[string]time.Duration),
		startTime:      time.Now(),
		updateInterval: defaultUpdateInterval,
		out:            os.Stderr,
		loggers:        make([]types.Logger, 0),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}
