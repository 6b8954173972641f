package builder

import (
	"github.com/joeydtaylor/electrode/pkg/internal/cluster"
	"github.com/joeydtaylor/electrode/pkg/internal/correlation"
	"github.com/joeydtaylor/electrode/pkg/internal/export"
	"github.com/joeydtaylor/electrode/pkg/internal/loader"
	"github.com/joeydtaylor/electrode/pkg/internal/pipeline"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

type PipelineResult = pipeline.Result

func NewPipeline(options ...types.Option[*pipeline.Pipeline]) *pipeline.Pipeline {
	return pipeline.NewPipeline(options...)
}

func PipelineWithLogger(loggers ...types.Logger) types.Option[*pipeline.Pipeline] {
	return pipeline.WithLogger(loggers...)
}

func PipelineWithLoader(l *loader.Loader) types.Option[*pipeline.Pipeline] {
	return pipeline.WithLoader(l)
}

func PipelineWithEngine(e *correlation.Engine) types.Option[*pipeline.Pipeline] {
	return pipeline.WithEngine(e)
}

func PipelineWithOrderer(o *cluster.Orderer) types.Option[*pipeline.Pipeline] {
	return pipeline.WithOrderer(o)
}

func PipelineWithStore(s types.ArtifactStore) types.Option[*pipeline.Pipeline] {
	return pipeline.WithStore(s)
}

func PipelineWithMeter(m types.Meter) types.Option[*pipeline.Pipeline] {
	return pipeline.WithMeter(m)
}

// PipelineWithExporter enables the Parquet export stage.
func PipelineWithExporter(e *export.Exporter) types.Option[*pipeline.Pipeline] {
	return pipeline.WithExporter(e)
}

func PipelineWithReuseSignals(reuse bool) types.Option[*pipeline.Pipeline] {
	return pipeline.WithReuseSignals(reuse)
}

func PipelineWithReuseCorrelation(reuse bool) types.Option[*pipeline.Pipeline] {
	return pipeline.WithReuseCorrelation(reuse)
}

func PipelineWithComponentMetadata(name string, id string) types.Option[*pipeline.Pipeline] {
	return pipeline.WithComponentMetadata(name, id)
}
