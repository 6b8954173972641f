package builder

import (
	"github.com/joeydtaylor/electrode/pkg/internal/loader"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

type SignalMatrix = types.SignalMatrix

// Loader errors.
var (
	ErrDecode     = loader.ErrDecode
	ErrSampleRate = loader.ErrSampleRate
	ErrTooLong    = loader.ErrTooLong
	ErrNoChannels = loader.ErrNoChannels
)

type DecodeError = loader.DecodeError

const (
	DefaultMaxSamples = loader.DefaultMaxSamples
	DefaultSampleRate = loader.DefaultSampleRate
)

func NewLoader(options ...types.Option[*loader.Loader]) *loader.Loader {
	return loader.NewLoader(options...)
}

func LoaderWithLogger(loggers ...types.Logger) types.Option[*loader.Loader] {
	return loader.WithLogger(loggers...)
}

// LoaderWithDirectory sets the directory holding one WAV file per channel.
func LoaderWithDirectory(dir string) types.Option[*loader.Loader] {
	return loader.WithDirectory(dir)
}

// LoaderWithMaxSamples sets the padded length; 0 pads to the longest file.
func LoaderWithMaxSamples(n int) types.Option[*loader.Loader] {
	return loader.WithMaxSamples(n)
}

// LoaderWithSampleRate sets the expected sample rate; 0 accepts the first file's rate.
func LoaderWithSampleRate(hz int) types.Option[*loader.Loader] {
	return loader.WithSampleRate(hz)
}

func LoaderWithExtension(ext string) types.Option[*loader.Loader] {
	return loader.WithExtension(ext)
}

func LoaderWithComponentMetadata(name string, id string) types.Option[*loader.Loader] {
	return loader.WithComponentMetadata(name, id)
}

// WriteWAV writes 16-bit PCM samples, mostly useful for fixtures and demos.
func WriteWAV(path string, sampleRate, numChans int, samples []int) error {
	return loader.WriteWAV(path, sampleRate, numChans, samples)
}
