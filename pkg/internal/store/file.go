package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/utils"
	"github.com/joeydtaylor/electrode/pkg/logschema"
)

// FileStore keeps artifacts as files in one directory. Writes go to a temporary
// file that is renamed into place, so readers never observe partial artifacts.
type FileStore struct {
	base
	dir   string
	meter types.Meter
}

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string, options ...types.Option[*FileStore]) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", dir, err)
	}
	s := &FileStore{
		base: base{componentMetadata: types.ComponentMetadata{ID: utils.GenerateUniqueHash(), Type: "FILE_STORE"}},
		dir:  dir,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Dir returns the root directory.
func (s *FileStore) Dir() string { return s.dir }

// SetMeter attaches a meter that counts written artifacts and bytes.
func (s *FileStore) SetMeter(m types.Meter) { s.meter = m }

func (s *FileStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("store: invalid artifact name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

// Write replaces the named artifact with the bytes produced by fill.
func (s *FileStore) Write(ctx context.Context, name string, fill func(io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst, err := s.path(name)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: create temp for %s: %w", name, err)
	}
	cw := &countingWriter{w: tmp}
	if err := fill(cw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: commit %s: %w", name, err)
	}

	if s.meter != nil {
		s.meter.IncrementCount(types.MetricArtifactsWritten)
		s.meter.AddCount(types.MetricBytesWritten, uint64(cw.n))
	}
	s.NotifyLoggers(types.DebugLevel, "artifact written",
		logschema.FieldComponent, s.componentMetadata,
		logschema.FieldEvent, "write",
		logschema.FieldArtifact, name,
		"bytes", cw.n,
	)
	return nil
}

// Open returns a reader over the named artifact.
func (s *FileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", name, err)
	}
	return f, nil
}

// Exists reports whether the named artifact exists.
func (s *FileStore) Exists(ctx context.Context, name string) (bool, error) {
	p, err := s.path(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// List returns artifact names in lexicographic order, skipping temporaries.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", s.dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && e.Name()[0] != '.' {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
