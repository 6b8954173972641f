package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/utils"
	"github.com/joeydtaylor/electrode/pkg/logschema"
)

// ListChannelFiles returns the channel files in dir in lexicographic order.
func (l *Loader) ListChannelFiles() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("loader: read dir %s: %w", l.dir, err)
	}
	// os.ReadDir sorts by file name.
	entries = utils.Filter(entries, func(e os.DirEntry) bool {
		return e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), l.extension)
	})
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// Load decodes every channel file, validates rates and lengths and returns the padded matrix.
func (l *Loader) Load(ctx context.Context) (*types.SignalMatrix, error) {
	names, err := l.ListChannelFiles()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoChannels, l.dir)
	}

	l.NotifyLoggers(types.InfoLevel, "loading channels",
		logschema.FieldComponent, l.componentMetadata,
		logschema.FieldEvent, "load_start",
		"directory", l.dir,
		"files", len(names),
	)

	waves := make([]waveform, 0, len(names))
	expectedRate := l.sampleRate
	longest := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(l.dir, name)
		samples, rate, err := DecodeFile(path)
		if err != nil {
			l.NotifyLoggers(types.ErrorLevel, "decode failed",
				logschema.FieldComponent, l.componentMetadata,
				logschema.FieldEvent, "decode",
				logschema.FieldError, err,
			)
			return nil, err
		}
		if expectedRate == 0 {
			expectedRate = rate
		}
		if rate != expectedRate {
			return nil, fmt.Errorf("%w: %s is %d Hz, want %d Hz", ErrSampleRate, name, rate, expectedRate)
		}
		if len(samples) > longest {
			longest = len(samples)
		}
		waves = append(waves, waveform{name: name, sampleRate: rate, samples: samples})

		l.NotifyLoggers(types.DebugLevel, "channel decoded",
			logschema.FieldComponent, l.componentMetadata,
			logschema.FieldEvent, "decode",
			"file", name,
			"samples", len(samples),
		)
	}

	width := l.maxSamples
	if width == 0 {
		width = longest
	}
	for _, w := range waves {
		if len(w.samples) > width {
			return nil, fmt.Errorf("%w: %s has %d samples, maximum is %d", ErrTooLong, w.name, len(w.samples), width)
		}
	}

	m := pad(waves, width)
	m.SampleRate = expectedRate

	l.NotifyLoggers(types.InfoLevel, "channels loaded",
		logschema.FieldComponent, l.componentMetadata,
		logschema.FieldEvent, "load_complete",
		"channels", m.Channels,
		"samples", m.Samples,
		"min_length", m.MinLength(),
	)
	return m, nil
}

// pad stacks waveforms into a channels×width matrix, right-padding with zeros.
func pad(waves []waveform, width int) *types.SignalMatrix {
	m := &types.SignalMatrix{
		Channels: len(waves),
		Samples:  width,
		Data:     make([]float64, len(waves)*width),
		Lengths:  make([]int, len(waves)),
		Names:    make([]string, len(waves)),
	}
	for i, w := range waves {
		copy(m.Data[i*width:(i+1)*width], w.samples)
		m.Lengths[i] = len(w.samples)
		m.Names[i] = w.name
	}
	return m
}
