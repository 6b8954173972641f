package pipeline

import (
	"github.com/joeydtaylor/electrode/pkg/internal/cluster"
	"github.com/joeydtaylor/electrode/pkg/internal/correlation"
	"github.com/joeydtaylor/electrode/pkg/internal/export"
	"github.com/joeydtaylor/electrode/pkg/internal/loader"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

// WithLogger attaches loggers to the pipeline and its stages.
func WithLogger(loggers ...types.Logger) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.ConnectLogger(loggers...)
	}
}

// WithLoader replaces the default loader.
func WithLoader(l *loader.Loader) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		if l != nil {
			p.loader = l
		}
	}
}

// WithEngine replaces the default correlation engine.
func WithEngine(e *correlation.Engine) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		if e != nil {
			p.engine = e
		}
	}
}

// WithOrderer replaces the default clustering orderer.
func WithOrderer(o *cluster.Orderer) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		if o != nil {
			p.orderer = o
		}
	}
}

// WithStore sets where artifacts are written.
func WithStore(s types.ArtifactStore) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.store = s
	}
}

// WithMeter attaches a meter to the pipeline and its stages.
func WithMeter(m types.Meter) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.meter = m
	}
}

// WithExporter enables the Parquet export stage after clustering.
func WithExporter(e *export.Exporter) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.exporter = e
	}
}

// WithReuseSignals restores signals.npy from the store instead of decoding the WAV directory.
func WithReuseSignals(reuse bool) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.reuseSignals = reuse
	}
}

// WithReuseCorrelation restores the correlation matrices from the store and only re-runs clustering.
// It implies WithReuseSignals.
func WithReuseCorrelation(reuse bool) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.reuseCorrelation = reuse
	}
}

// WithComponentMetadata sets the pipeline name and id.
func WithComponentMetadata(name, id string) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.SetComponentMetadata(name, id)
	}
}
