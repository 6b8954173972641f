package profile_test

import (
	"context"
	"math"
	"testing"

	"github.com/joeydtaylor/electrode/pkg/internal/profile"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq float64, rate, n int, offset float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = offset + math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return out
}

func TestChannelMoments(t *testing.T) {
	p := profile.Channel([]float64{1, 2, 3, 4}, 100)
	assert.InDelta(t, 2.5, p.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), p.StdDev, 1e-12)
	assert.Equal(t, 1.0, p.Min)
	assert.Equal(t, 4.0, p.Max)
	assert.InDelta(t, math.Sqrt(7.5), p.RMS, 1e-12)
}

func TestDominantFrequencyIgnoresDC(t *testing.T) {
	rate := 1000
	samples := sine(50, rate, 1000, 40)
	p := profile.Channel(samples, rate)
	assert.InDelta(t, 50.0, p.DominantHz, 1e-9)
}

func TestChannelDegenerate(t *testing.T) {
	assert.Equal(t, types.ChannelProfile{}, profile.Channel(nil, 100))
	p := profile.Channel([]float64{3}, 100)
	assert.Equal(t, 3.0, p.Mean)
	assert.Zero(t, p.DominantHz)
}

func TestComputeUsesNativeLength(t *testing.T) {
	m := &types.SignalMatrix{
		Channels:   2,
		Samples:    4,
		SampleRate: 10,
		Data:       []float64{2, 2, 0, 0, 1, -1, 1, -1},
		Lengths:    []int{2, 4},
	}
	profiles, err := profile.Compute(context.Background(), m, nil)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, 2.0, profiles[0].Mean, "padding must not enter the mean")
	assert.Equal(t, 2.0, profiles[0].Min)
	assert.InDelta(t, 5.0, profiles[1].DominantHz, 1e-9)
}

func TestMatrixRoundTrip(t *testing.T) {
	in := []types.ChannelProfile{{Mean: 1, StdDev: 2, Min: 3, Max: 4, RMS: 5, DominantHz: 6}, {Mean: -1}}
	flat := profile.ToMatrix(in)
	assert.Len(t, flat, 2*types.ProfileFields)

	out, err := profile.FromMatrix(flat)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = profile.FromMatrix([]float64{1, 2})
	assert.Error(t, err)
}
