package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/joeydtaylor/electrode/pkg/internal/cluster"
	"github.com/joeydtaylor/electrode/pkg/internal/correlation"
	"github.com/joeydtaylor/electrode/pkg/internal/export"
	"github.com/joeydtaylor/electrode/pkg/internal/loader"
	"github.com/joeydtaylor/electrode/pkg/internal/meter"
	"github.com/joeydtaylor/electrode/pkg/internal/pipeline"
	"github.com/joeydtaylor/electrode/pkg/internal/store"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rate = 1000

func writeRecording(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	gens := []func(i int) int{
		func(i int) int { return i },
		func(i int) int { return 2*i + i%3 },
		func(i int) int { return -i },
		func(i int) int { return (i * 7) % 13 },
	}
	for ch, gen := range gens {
		n := 64 - ch
		samples := make([]int, n)
		for i := range samples {
			samples[i] = gen(i)
		}
		require.NoError(t, loader.WriteWAV(filepath.Join(dir, fmt.Sprintf("ch%02d.wav", ch+1)), rate, 1, samples))
	}
	return dir
}

func newPipeline(t *testing.T, raw string, s types.ArtifactStore, opts ...types.Option[*pipeline.Pipeline]) *pipeline.Pipeline {
	t.Helper()
	l := loader.NewLoader(loader.WithDirectory(raw), loader.WithMaxSamples(0), loader.WithSampleRate(rate))
	base := []types.Option[*pipeline.Pipeline]{pipeline.WithLoader(l), pipeline.WithStore(s)}
	return pipeline.NewPipeline(append(base, opts...)...)
}

func TestRunWritesEveryArtifact(t *testing.T) {
	ctx := context.Background()
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	m := meter.NewMeter(meter.WithOutput(nil))
	res, err := newPipeline(t, writeRecording(t), s, pipeline.WithMeter(m)).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Channels)
	assert.Equal(t, 64, res.Samples)
	assert.Equal(t, rate, res.SampleRate)
	assert.Equal(t, types.Formulas(), res.Formulas)
	assert.Equal(t, 12, res.Orders)
	assert.False(t, res.ReusedSignals)
	for _, stage := range []string{pipeline.StageLoad, pipeline.StageProfile, pipeline.StageCorrelate, pipeline.StageCluster} {
		assert.Contains(t, res.Stages, stage)
		_, ok := m.StageDuration(stage)
		assert.True(t, ok, stage)
	}
	assert.NotContains(t, res.Stages, pipeline.StageExport)
	assert.Equal(t, uint64(12), m.GetMetricCount(types.MetricOrdersComputed))
	assert.Equal(t, uint64(4), m.GetMetricCount(types.MetricChannelsLoaded))

	names, err := s.List(ctx)
	require.NoError(t, err)
	for _, want := range []string{"signals.npy", "lengths.npy", "profiles.npy", "corrP.npy", "corrS.npy", "corrK.npy", "order_K_ward.npy", "order_P_single.npy", store.ManifestName} {
		assert.Contains(t, names, want)
	}

	b, err := store.LoadBundle(ctx, s, 0)
	require.NoError(t, err)
	assert.Equal(t, rate, b.Signals.SampleRate)
	assert.Equal(t, []string{"ch01.wav", "ch02.wav", "ch03.wav", "ch04.wav"}, b.Signals.Names)
	assert.Equal(t, []int{64, 63, 62, 61}, b.Signals.Lengths)
	assert.Len(t, b.Orders, 12)
	assert.Len(t, b.Profiles, 4)
	for key, order := range b.Orders {
		assert.NoError(t, order.Validate(4), key.ArtifactName())
	}
}

func TestRunReusesCorrelation(t *testing.T) {
	ctx := context.Background()
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	raw := writeRecording(t)

	_, err = newPipeline(t, raw, s).Run(ctx)
	require.NoError(t, err)
	before, err := store.LoadCorrelation(ctx, s, types.FormulaKendall)
	require.NoError(t, err)

	res, err := newPipeline(t, filepath.Join(raw, "missing"), s,
		pipeline.WithReuseCorrelation(true),
		pipeline.WithOrderer(cluster.NewOrderer(cluster.WithMethods(types.MethodWard))),
	).Run(ctx)
	require.NoError(t, err)
	assert.True(t, res.ReusedSignals)
	assert.True(t, res.ReusedCorrelation)
	assert.Equal(t, 3, res.Orders)

	after, err := store.LoadCorrelation(ctx, s, types.FormulaKendall)
	require.NoError(t, err)
	assert.Equal(t, before.Data, after.Data)

	m, err := store.LoadManifest(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []types.LinkageMethod{types.MethodWard}, m.Methods)
	assert.Len(t, m.Names, 4)
}

func TestRunExportsParquet(t *testing.T) {
	ctx := context.Background()
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	res, err := newPipeline(t, writeRecording(t), s,
		pipeline.WithEngine(correlation.NewEngine(correlation.WithWorkers(3))),
		pipeline.WithExporter(export.NewExporter()),
	).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, export.Summary{CorrelationRows: 18, OrderRows: 48}, res.Exported)

	ok, err := s.Exists(ctx, export.OrdersName)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()

	_, err := pipeline.NewPipeline().Run(ctx)
	assert.ErrorIs(t, err, pipeline.ErrNoStore)

	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	_, err = newPipeline(t, t.TempDir(), s).Run(ctx)
	assert.True(t, errors.Is(err, loader.ErrNoChannels), "got %v", err)

	_, err = newPipeline(t, t.TempDir(), s, pipeline.WithReuseSignals(true)).Run(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = newPipeline(t, writeRecording(t), s).Run(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}
