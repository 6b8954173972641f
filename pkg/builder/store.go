package builder

import (
	"context"

	"github.com/joeydtaylor/electrode/pkg/internal/store"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

type ArtifactStore = types.ArtifactStore

type S3Config = store.S3Config

type ArtifactBundle = store.Bundle

type Manifest = store.Manifest

// ErrArtifactNotFound is returned when a named artifact does not exist.
var ErrArtifactNotFound = store.ErrNotFound

func NewFileStore(dir string, options ...types.Option[*store.FileStore]) (*store.FileStore, error) {
	return store.NewFileStore(dir, options...)
}

func FileStoreWithLogger(loggers ...types.Logger) types.Option[*store.FileStore] {
	return store.WithLogger(loggers...)
}

func FileStoreWithMeter(m types.Meter) types.Option[*store.FileStore] {
	return store.WithMeter(m)
}

// NewS3Store wraps an existing client, for example one pointed at LocalStack.
func NewS3Store(cli store.S3API, bucket, prefix string, options ...types.Option[*store.S3Store]) (*store.S3Store, error) {
	return store.NewS3Store(cli, bucket, prefix, options...)
}

// OpenS3Store builds an S3 client from cfg and wraps it.
func OpenS3Store(ctx context.Context, cfg S3Config, options ...types.Option[*store.S3Store]) (*store.S3Store, error) {
	return store.OpenS3(ctx, cfg, options...)
}

func S3StoreWithLogger(loggers ...types.Logger) types.Option[*store.S3Store] {
	return store.S3WithLogger(loggers...)
}

func S3StoreWithMeter(m types.Meter) types.Option[*store.S3Store] {
	return store.S3WithMeter(m)
}

// LoadBundle reads every artifact the dashboard needs.
func LoadBundle(ctx context.Context, s types.ArtifactStore, defaultSampleRate int) (*store.Bundle, error) {
	return store.LoadBundle(ctx, s, defaultSampleRate)
}
