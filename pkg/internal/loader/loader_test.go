package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/joeydtaylor/electrode/pkg/internal/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeChannel(t *testing.T, dir, name string, rate int, samples []int) {
	t.Helper()
	require.NoError(t, loader.WriteWAV(filepath.Join(dir, name), rate, 1, samples))
}

func TestLoadPadsToMaximum(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, "ch02.wav", 1000, []int{4, 5})
	writeChannel(t, dir, "ch01.wav", 1000, []int{1, -2, 3})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("notes"), 0o644))

	l := loader.NewLoader(
		loader.WithDirectory(dir),
		loader.WithMaxSamples(6),
		loader.WithSampleRate(1000),
	)
	m, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, m.Channels)
	assert.Equal(t, 6, m.Samples)
	assert.Equal(t, 1000, m.SampleRate)
	assert.Equal(t, []string{"ch01.wav", "ch02.wav"}, m.Names)
	assert.Equal(t, []int{3, 2}, m.Lengths)
	assert.Equal(t, []float64{1, -2, 3, 0, 0, 0}, m.Row(0))
	assert.Equal(t, []float64{4, 5, 0, 0, 0, 0}, m.Row(1))
	assert.Equal(t, 2, m.MinLength())
}

func TestLoadZeroMaximumUsesLongest(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, "a.wav", 500, []int{1, 2, 3, 4})
	writeChannel(t, dir, "b.wav", 500, []int{9})

	m, err := loader.NewLoader(
		loader.WithDirectory(dir),
		loader.WithMaxSamples(0),
		loader.WithSampleRate(0),
	).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, m.Samples)
	assert.Equal(t, 500, m.SampleRate)
	assert.Equal(t, 9.0, m.At(1, 0))
	assert.Equal(t, 0.0, m.At(1, 3))
}

func TestLoadRejectsSampleRateMismatch(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, "a.wav", 1000, []int{1, 2})
	writeChannel(t, dir, "b.wav", 2000, []int{1, 2})

	_, err := loader.NewLoader(loader.WithDirectory(dir), loader.WithSampleRate(0)).Load(context.Background())
	assert.ErrorIs(t, err, loader.ErrSampleRate)
}

func TestLoadRejectsTooLong(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, "a.wav", 1000, []int{1, 2, 3, 4, 5})

	_, err := loader.NewLoader(
		loader.WithDirectory(dir),
		loader.WithMaxSamples(3),
		loader.WithSampleRate(1000),
	).Load(context.Background())
	assert.ErrorIs(t, err, loader.ErrTooLong)
}

func TestLoadEmptyDirectory(t *testing.T) {
	_, err := loader.NewLoader(loader.WithDirectory(t.TempDir())).Load(context.Background())
	assert.ErrorIs(t, err, loader.ErrNoChannels)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.wav")
	require.NoError(t, os.WriteFile(bad, []byte("RIFF but not really"), 0o644))

	_, err := loader.NewLoader(loader.WithDirectory(dir)).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrDecode)

	var de *loader.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, bad, de.Path)
}

func TestLoadRejectsStereo(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, loader.WriteWAV(filepath.Join(dir, "stereo.wav"), 1000, 2, []int{1, 2, 3, 4}))

	_, err := loader.NewLoader(loader.WithDirectory(dir), loader.WithSampleRate(1000)).Load(context.Background())
	assert.ErrorIs(t, err, loader.ErrDecode)
}

func TestLoadHonoursCancellation(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, "a.wav", 1000, []int{1, 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := loader.NewLoader(loader.WithDirectory(dir), loader.WithSampleRate(1000)).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoaderMetadata(t *testing.T) {
	l := loader.NewLoader(loader.WithComponentMetadata("raw", "loader-1"))
	meta := l.GetComponentMetadata()
	assert.Equal(t, "raw", meta.Name)
	assert.Equal(t, "loader-1", meta.ID)
	assert.Equal(t, "LOADER", meta.Type)
}
