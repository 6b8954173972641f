package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/codec"
	"github.com/joeydtaylor/electrode/pkg/internal/profile"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

// ManifestName is the JSON summary written next to the .npy artifacts.
const ManifestName = "manifest.json"

// Manifest describes a preprocessing run.
type Manifest struct {
	Channels      int                   `json:"channels"`
	Samples       int                   `json:"samples"`
	SampleRate    int                   `json:"sample_rate"`
	Names         []string              `json:"names,omitempty"`
	Formulas      []types.Formula       `json:"formulas"`
	Methods       []types.LinkageMethod `json:"methods"`
	Dissimilarity types.Dissimilarity   `json:"dissimilarity"`
	CreatedAt     time.Time             `json:"created_at"`
}

// Bundle is every artifact the dashboard needs.
type Bundle struct {
	Manifest     Manifest
	Signals      *types.SignalMatrix
	Correlations map[types.Formula]*types.CorrelationMatrix
	Orders       map[types.OrderKey]types.ChannelOrder
	Profiles     []types.ChannelProfile
}

func writeNPY[T codec.Element](ctx context.Context, s types.ArtifactStore, name string, a codec.Array[T]) error {
	enc := codec.NewNPYEncoder[T]()
	return s.Write(ctx, NPY(name), func(w io.Writer) error { return enc.Encode(w, a) })
}

func readNPY[T codec.Element](ctx context.Context, s types.ArtifactStore, name string) (codec.Array[T], error) {
	rc, err := s.Open(ctx, NPY(name))
	if err != nil {
		return codec.Array[T]{}, err
	}
	defer rc.Close()
	a, err := codec.NewNPYDecoder[T]().Decode(rc)
	if err != nil {
		return codec.Array[T]{}, fmt.Errorf("store: decode %s: %w", NPY(name), err)
	}
	return a, nil
}

// SaveSignals writes signals.npy and lengths.npy.
func SaveSignals(ctx context.Context, s types.ArtifactStore, m *types.SignalMatrix) error {
	if err := writeNPY(ctx, s, types.ArtifactSignals, codec.NewMatrix(m.Channels, m.Samples, m.Data)); err != nil {
		return err
	}
	lengths := make([]int64, len(m.Lengths))
	for i, l := range m.Lengths {
		lengths[i] = int64(l)
	}
	return writeNPY(ctx, s, types.ArtifactLengths, codec.NewVector(lengths))
}

// LoadSignals restores the signal matrix. Missing lengths mean every channel spans the full width.
func LoadSignals(ctx context.Context, s types.ArtifactStore, sampleRate int) (*types.SignalMatrix, error) {
	a, err := readNPY[float64](ctx, s, types.ArtifactSignals)
	if err != nil {
		return nil, err
	}
	if len(a.Shape) != 2 {
		return nil, fmt.Errorf("%w: signals shape %v", codec.ErrFormat, a.Shape)
	}
	m := &types.SignalMatrix{
		Channels:   a.Rows(),
		Samples:    a.Cols(),
		SampleRate: sampleRate,
		Data:       a.Data,
		Lengths:    make([]int, a.Rows()),
	}

	lengths, err := readNPY[int64](ctx, s, types.ArtifactLengths)
	switch {
	case errors.Is(err, ErrNotFound):
		for i := range m.Lengths {
			m.Lengths[i] = m.Samples
		}
	case err != nil:
		return nil, err
	case len(lengths.Data) != m.Channels:
		return nil, fmt.Errorf("%w: %d lengths for %d channels", codec.ErrFormat, len(lengths.Data), m.Channels)
	default:
		for i, l := range lengths.Data {
			m.Lengths[i] = int(l)
		}
	}
	return m, nil
}

// SaveCorrelation writes corr{P,S,K}.npy.
func SaveCorrelation(ctx context.Context, s types.ArtifactStore, c *types.CorrelationMatrix) error {
	return writeNPY(ctx, s, types.CorrelationArtifact(c.Formula), codec.NewMatrix(c.N, c.N, c.Data))
}

// LoadCorrelation reads one correlation matrix.
func LoadCorrelation(ctx context.Context, s types.ArtifactStore, f types.Formula) (*types.CorrelationMatrix, error) {
	a, err := readNPY[float64](ctx, s, types.CorrelationArtifact(f))
	if err != nil {
		return nil, err
	}
	if len(a.Shape) != 2 || a.Rows() != a.Cols() {
		return nil, fmt.Errorf("%w: correlation shape %v", codec.ErrFormat, a.Shape)
	}
	return &types.CorrelationMatrix{Formula: f, N: a.Rows(), Data: a.Data}, nil
}

// SaveOrder writes order_{P,S,K}_{method}.npy.
func SaveOrder(ctx context.Context, s types.ArtifactStore, key types.OrderKey, order types.ChannelOrder) error {
	data := make([]int64, len(order))
	for i, v := range order {
		data[i] = int64(v)
	}
	return writeNPY(ctx, s, key.ArtifactName(), codec.NewVector(data))
}

// LoadOrder reads one channel order and checks it is a permutation of [0, n).
func LoadOrder(ctx context.Context, s types.ArtifactStore, key types.OrderKey, n int) (types.ChannelOrder, error) {
	a, err := readNPY[int64](ctx, s, key.ArtifactName())
	if err != nil {
		return nil, err
	}
	order := make(types.ChannelOrder, len(a.Data))
	for i, v := range a.Data {
		order[i] = int(v)
	}
	if err := order.Validate(n); err != nil {
		return nil, fmt.Errorf("store: %s: %w", NPY(key.ArtifactName()), err)
	}
	return order, nil
}

// SaveProfiles writes profiles.npy.
func SaveProfiles(ctx context.Context, s types.ArtifactStore, profiles []types.ChannelProfile) error {
	return writeNPY(ctx, s, types.ArtifactProfiles, codec.NewMatrix(len(profiles), types.ProfileFields, profile.ToMatrix(profiles)))
}

// LoadProfiles reads profiles.npy.
func LoadProfiles(ctx context.Context, s types.ArtifactStore) ([]types.ChannelProfile, error) {
	a, err := readNPY[float64](ctx, s, types.ArtifactProfiles)
	if err != nil {
		return nil, err
	}
	return profile.FromMatrix(a.Data)
}

// SaveManifest writes manifest.json.
func SaveManifest(ctx context.Context, s types.ArtifactStore, m Manifest) error {
	enc := codec.NewJSONEncoder[Manifest]()
	return s.Write(ctx, ManifestName, func(w io.Writer) error { return enc.Encode(w, m) })
}

// LoadManifest reads manifest.json.
func LoadManifest(ctx context.Context, s types.ArtifactStore) (Manifest, error) {
	rc, err := s.Open(ctx, ManifestName)
	if err != nil {
		return Manifest{}, err
	}
	defer rc.Close()
	return codec.NewJSONDecoder[Manifest]().Decode(rc)
}

// LoadBundle reads every artifact the dashboard needs. Missing orders or
// profiles are tolerated; missing signals, or a missing correlation for a
// formula the manifest lists, are errors.
func LoadBundle(ctx context.Context, s types.ArtifactStore, defaultSampleRate int) (*Bundle, error) {
	b := &Bundle{
		Correlations: make(map[types.Formula]*types.CorrelationMatrix, 3),
		Orders:       make(map[types.OrderKey]types.ChannelOrder, 12),
	}

	manifest, err := LoadManifest(ctx, s)
	switch {
	case errors.Is(err, ErrNotFound):
		manifest = Manifest{SampleRate: defaultSampleRate, Formulas: types.Formulas(), Methods: types.Methods()}
	case err != nil:
		return nil, err
	}
	if manifest.SampleRate == 0 {
		manifest.SampleRate = defaultSampleRate
	}

	b.Signals, err = LoadSignals(ctx, s, manifest.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("store: load signals: %w", err)
	}
	if len(manifest.Names) == b.Signals.Channels {
		b.Signals.Names = manifest.Names
	}
	manifest.Channels, manifest.Samples = b.Signals.Channels, b.Signals.Samples
	b.Manifest = manifest

	formulas := manifest.Formulas
	if len(formulas) == 0 {
		formulas = types.Formulas()
	}
	for _, f := range formulas {
		c, err := LoadCorrelation(ctx, s, f)
		if err != nil {
			return nil, fmt.Errorf("store: load %s correlation: %w", f, err)
		}
		if c.N != b.Signals.Channels {
			return nil, fmt.Errorf("%w: corr%s is %d×%d for %d channels", codec.ErrFormat, f.Code(), c.N, c.N, b.Signals.Channels)
		}
		b.Correlations[f] = c

		for _, method := range types.Methods() {
			key := types.OrderKey{Formula: f, Method: method}
			order, err := LoadOrder(ctx, s, key, c.N)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			b.Orders[key] = order
		}
	}

	b.Profiles, err = LoadProfiles(ctx, s)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return b, nil
}
