package types

import (
	"context"
	"io"
)

// Artifact names (without the .npy extension) shared by the pipeline and the dashboard.
const (
	ArtifactSignals  = "signals"
	ArtifactLengths  = "lengths"
	ArtifactProfiles = "profiles"
)

// CorrelationArtifact returns the persisted name of a correlation matrix, e.g. "corrP".
func CorrelationArtifact(f Formula) string {
	return "corr" + f.Code()
}

// ArtifactStore persists named binary artifacts.
type ArtifactStore interface {
	ConnectLogger(...Logger)
	GetComponentMetadata() ComponentMetadata
	// Write stores the bytes produced by fill under name, replacing any previous artifact.
	Write(ctx context.Context, name string, fill func(io.Writer) error) error
	// Open returns a reader over the artifact; callers must close it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Exists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]string, error)
}
