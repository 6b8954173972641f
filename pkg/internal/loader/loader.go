// Package loader reads one mono WAV file per electrode channel and stacks the
// channels into a zero-padded types.SignalMatrix.
package loader

import (
	"sync"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/utils"
)

const (
	// DefaultMaxSamples is the padded length of the reference recording set.
	DefaultMaxSamples = 99903
	// DefaultSampleRate is the reference recording sample rate in Hz.
	DefaultSampleRate = 19531
	// DefaultExtension selects which directory entries are treated as channels.
	DefaultExtension = ".wav"
)

// Loader decodes a directory of per-channel waveform files.
type Loader struct {
	componentMetadata types.ComponentMetadata
	loggers           []types.Logger
	loggersLock       sync.Mutex

	dir        string
	maxSamples int // 0 means the longest file decides
	sampleRate int // 0 means the first file decides
	extension  string
}

// NewLoader creates a Loader with the reference defaults applied before options.
func NewLoader(options ...types.Option[*Loader]) *Loader {
	l := &Loader{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "LOADER",
		},
		loggers:    make([]types.Logger, 0),
		dir:        "data/raw",
		maxSamples: DefaultMaxSamples,
		sampleRate: DefaultSampleRate,
		extension:  DefaultExtension,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// SetDirectory sets the input directory.
func (l *Loader) SetDirectory(dir string) { l.dir = dir }

// SetMaxSamples sets the padded length; 0 pads to the longest file.
func (l *Loader) SetMaxSamples(n int) {
	if n >= 0 {
		l.maxSamples = n
	}
}

// SetSampleRate sets the expected sample rate; 0 accepts whatever the first file carries.
func (l *Loader) SetSampleRate(hz int) {
	if hz >= 0 {
		l.sampleRate = hz
	}
}

// SetExtension changes the file extension treated as a channel.
func (l *Loader) SetExtension(ext string) {
	if ext != "" {
		l.extension = ext
	}
}

// Directory returns the configured input directory.
func (l *Loader) Directory() string { return l.dir }

// SampleRate returns the expected sample rate; 0 means the first file decides.
func (l *Loader) SampleRate() int { return l.sampleRate }
