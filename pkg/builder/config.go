package builder

import (
	"context"
	"fmt"

	"github.com/joeydtaylor/electrode/pkg/internal/cluster"
	"github.com/joeydtaylor/electrode/pkg/internal/config"
	"github.com/joeydtaylor/electrode/pkg/internal/correlation"
	"github.com/joeydtaylor/electrode/pkg/internal/export"
	"github.com/joeydtaylor/electrode/pkg/internal/loader"
	"github.com/joeydtaylor/electrode/pkg/internal/pipeline"
	"github.com/joeydtaylor/electrode/pkg/internal/store"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

type Config = config.Config

func DefaultConfig() *Config { return config.Default() }

// LoadConfig reads path over the defaults and applies ELECTRODE_* overrides.
func LoadConfig(path string) (*Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// NewLoggerFromConfig builds the zap logger described by cfg.Logging.
func NewLoggerFromConfig(cfg *Config) (types.Logger, error) {
	logger := NewLogger(
		LoggerWithLevel(cfg.Logging.Level),
		LoggerWithDevelopment(cfg.Logging.Development),
		LoggerWithEncoding(cfg.Logging.Format),
	)
	if cfg.Logging.File != "" {
		err := logger.AddSink("file", SinkConfig{
			Type:   string(FileSink),
			Config: map[string]interface{}{"path": cfg.Logging.File},
		})
		if err != nil {
			return nil, fmt.Errorf("logging.file: %w", err)
		}
	}
	return logger, nil
}

// OpenStore opens the artifact store selected by cfg.Storage.
func OpenStore(ctx context.Context, cfg *Config, logger types.Logger, m types.Meter) (types.ArtifactStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendS3:
		return store.OpenS3(ctx, cfg.StoreS3Config(), store.S3WithLogger(logger), store.S3WithMeter(m))
	default:
		return store.NewFileStore(cfg.Storage.Dir, store.WithLogger(logger), store.WithMeter(m))
	}
}

// NewPipelineFromConfig wires loader, engine, orderer and exporter from cfg.
func NewPipelineFromConfig(cfg *Config, s types.ArtifactStore, logger types.Logger, m types.Meter) (*pipeline.Pipeline, error) {
	formulas, err := cfg.FormulaList()
	if err != nil {
		return nil, err
	}
	methods, err := cfg.MethodList()
	if err != nil {
		return nil, err
	}
	dissimilarity, err := cfg.DissimilarityMode()
	if err != nil {
		return nil, err
	}

	opts := []types.Option[*pipeline.Pipeline]{
		pipeline.WithLoader(loader.NewLoader(
			loader.WithDirectory(cfg.Data.RawDir),
			loader.WithExtension(cfg.Data.Extension),
			loader.WithMaxSamples(cfg.Data.MaxSamples),
			loader.WithSampleRate(cfg.Data.SampleRate),
		)),
		pipeline.WithEngine(correlation.NewEngine(
			correlation.WithWorkers(cfg.Preprocess.Workers),
			correlation.WithFormulas(formulas...),
		)),
		pipeline.WithOrderer(cluster.NewOrderer(
			cluster.WithMethods(methods...),
			cluster.WithDissimilarity(dissimilarity),
		)),
		pipeline.WithStore(s),
		pipeline.WithReuseSignals(cfg.Preprocess.ReuseSignals),
		pipeline.WithReuseCorrelation(cfg.Preprocess.ReuseCorrelation),
		pipeline.WithLogger(logger),
	}
	if m != nil {
		opts = append(opts, pipeline.WithMeter(m))
	}
	if cfg.Preprocess.Export {
		opts = append(opts, pipeline.WithExporter(export.NewExporter(
			export.WithLogger(logger),
			export.WithCompression(cfg.Preprocess.Compression),
		)))
	}
	return pipeline.NewPipeline(opts...), nil
}
