package store

import "github.com/joeydtaylor/electrode/pkg/internal/types"

// WithLogger attaches loggers to a FileStore.
func WithLogger(loggers ...types.Logger) types.Option[*FileStore] {
	return func(s *FileStore) {
		s.ConnectLogger(loggers...)
	}
}

// WithMeter counts written artifacts and bytes on a FileStore.
func WithMeter(m types.Meter) types.Option[*FileStore] {
	return func(s *FileStore) {
		s.SetMeter(m)
	}
}

// S3WithLogger attaches loggers to an S3Store.
func S3WithLogger(loggers ...types.Logger) types.Option[*S3Store] {
	return func(s *S3Store) {
		s.ConnectLogger(loggers...)
	}
}

// S3WithMeter counts written artifacts and bytes on an S3Store.
func S3WithMeter(m types.Meter) types.Option[*S3Store] {
	return func(s *S3Store) {
		s.SetMeter(m)
	}
}
