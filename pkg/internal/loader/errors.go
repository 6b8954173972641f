package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode matches any DecodeError.
	ErrDecode = errors.New("loader: malformed waveform file")
	// ErrSampleRate is returned when a channel's sample rate differs from the expected one.
	ErrSampleRate = errors.New("loader: inconsistent sample rate")
	// ErrTooLong is returned when a channel has more samples than the configured maximum.
	ErrTooLong = errors.New("loader: channel exceeds maximum sample count")
	// ErrNoChannels is returned when the input directory holds no waveform files.
	ErrNoChannels = errors.New("loader: no waveform files found")
)

// DecodeError describes a file that could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("loader: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports ErrDecode as a match so callers can test with errors.Is.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
