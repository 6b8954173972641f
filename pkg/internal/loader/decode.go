package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// waveform is one decoded channel before padding.
type waveform struct {
	name       string
	sampleRate int
	samples    []float64
}

// DecodeFile decodes a single mono WAV file into float samples at their native scale.
func DecodeFile(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		cause := d.Err()
		if cause == nil {
			cause = errors.New("not a valid PCM wav file")
		}
		return nil, 0, &DecodeError{Path: path, Err: cause}
	}
	if d.NumChans != 1 {
		return nil, 0, &DecodeError{Path: path, Err: fmt.Errorf("expected 1 channel, got %d", d.NumChans)}
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, &DecodeError{Path: path, Err: err}
	}

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v)
	}
	return samples, int(d.SampleRate), nil
}
