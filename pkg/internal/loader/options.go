package loader

import "github.com/joeydtaylor/electrode/pkg/internal/types"

// WithLogger attaches one or more loggers to the loader.
func WithLogger(loggers ...types.Logger) types.Option[*Loader] {
	return func(l *Loader) {
		l.ConnectLogger(loggers...)
	}
}

// WithDirectory sets the directory holding one waveform file per channel.
func WithDirectory(dir string) types.Option[*Loader] {
	return func(l *Loader) {
		l.SetDirectory(dir)
	}
}

// WithMaxSamples sets the padded channel length. Zero pads to the longest file.
func WithMaxSamples(n int) types.Option[*Loader] {
	return func(l *Loader) {
		l.SetMaxSamples(n)
	}
}

// WithSampleRate sets the sample rate every file must carry. Zero takes the first file's rate.
func WithSampleRate(hz int) types.Option[*Loader] {
	return func(l *Loader) {
		l.SetSampleRate(hz)
	}
}

// WithExtension overrides the channel file extension (default ".wav").
func WithExtension(ext string) types.Option[*Loader] {
	return func(l *Loader) {
		l.SetExtension(ext)
	}
}

// WithComponentMetadata sets the loader's name and id.
func WithComponentMetadata(name string, id string) types.Option[*Loader] {
	return func(l *Loader) {
		l.SetComponentMetadata(name, id)
	}
}
