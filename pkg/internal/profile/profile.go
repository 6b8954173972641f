// Package profile summarises each channel over its native (unpadded) samples:
// moments, extremes, RMS and the dominant spectral frequency.
package profile

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Channel profiles one channel's samples recorded at sampleRate Hz.
func Channel(samples []float64, sampleRate int) types.ChannelProfile {
	if len(samples) == 0 {
		return types.ChannelProfile{}
	}
	p := types.ChannelProfile{
		Min: floats.Min(samples),
		Max: floats.Max(samples),
		RMS: math.Sqrt(floats.Dot(samples, samples) / float64(len(samples))),
	}
	if len(samples) > 1 {
		p.Mean, p.StdDev = stat.MeanStdDev(samples, nil)
	} else {
		p.Mean = samples[0]
	}
	p.DominantHz = DominantFrequency(samples, p.Mean, sampleRate)
	return p
}

// DominantFrequency returns the frequency of the largest FFT magnitude,
// ignoring the DC bin. The mean is removed first.
func DominantFrequency(samples []float64, mean float64, sampleRate int) float64 {
	m := len(samples)
	if m < 2 || sampleRate <= 0 {
		return 0
	}
	centered := make([]float64, m)
	copy(centered, samples)
	floats.AddConst(-mean, centered)

	spectrum := fft.FFTReal(centered)
	best, bestMag := 0, 0.0
	for k := 1; k <= m/2; k++ {
		if mag := cmplx.Abs(spectrum[k]); mag > bestMag {
			best, bestMag = k, mag
		}
	}
	return float64(best) * float64(sampleRate) / float64(m)
}

// Compute profiles every channel of signals over its native length.
func Compute(ctx context.Context, signals *types.SignalMatrix, meter types.Meter) ([]types.ChannelProfile, error) {
	if signals == nil {
		return nil, fmt.Errorf("profile: nil signal matrix")
	}
	if meter != nil {
		meter.AddToMetricTotal(types.MetricProfilesComputed, uint64(signals.Channels))
	}
	out := make([]types.ChannelProfile, signals.Channels)
	for ch := range out {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		length := signals.Samples
		if ch < len(signals.Lengths) && signals.Lengths[ch] <= signals.Samples {
			length = signals.Lengths[ch]
		}
		out[ch] = Channel(signals.Row(ch)[:length], signals.SampleRate)
		if meter != nil {
			meter.IncrementCount(types.MetricProfilesComputed)
		}
	}
	return out, nil
}

// ToMatrix flattens profiles into a row-major n×types.ProfileFields matrix.
func ToMatrix(profiles []types.ChannelProfile) []float64 {
	out := make([]float64, 0, len(profiles)*types.ProfileFields)
	for _, p := range profiles {
		out = append(out, p.Values()...)
	}
	return out
}

// FromMatrix is the inverse of ToMatrix.
func FromMatrix(data []float64) ([]types.ChannelProfile, error) {
	if len(data)%types.ProfileFields != 0 {
		return nil, fmt.Errorf("profile: %d values is not a multiple of %d", len(data), types.ProfileFields)
	}
	out := make([]types.ChannelProfile, len(data)/types.ProfileFields)
	for i := range out {
		out[i] = types.ProfileFromValues(data[i*types.ProfileFields : (i+1)*types.ProfileFields])
	}
	return out, nil
}
