package types

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// LinkageMethod names the cluster distance aggregation rule used by agglomerative clustering.
type LinkageMethod string

const (
	MethodSingle   LinkageMethod = "single"   // Nearest point.
	MethodAverage  LinkageMethod = "average"  // UPGMA.
	MethodCentroid LinkageMethod = "centroid" // UPGMC.
	MethodWard     LinkageMethod = "ward"     // Minimum variance.
)

// Methods returns every supported linkage method in artifact order.
func Methods() []LinkageMethod {
	return []LinkageMethod{MethodSingle, MethodAverage, MethodCentroid, MethodWard}
}

// ParseMethod accepts a linkage method name, case-insensitively.
func ParseMethod(s string) (LinkageMethod, error) {
	m := LinkageMethod(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Methods() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown linkage method %q", s)
}

// Dissimilarity selects how a correlation matrix is turned into clustering distances.
type Dissimilarity string

const (
	// DissimilarityProfile treats each correlation row as an observation and uses
	// the Euclidean distance between rows.
	DissimilarityProfile Dissimilarity = "profile"
	// DissimilarityCorrelation uses 1 - r directly.
	DissimilarityCorrelation Dissimilarity = "correlation"
)

// ParseDissimilarity accepts "profile" or "correlation"; empty means profile.
func ParseDissimilarity(s string) (Dissimilarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "profile":
		return DissimilarityProfile, nil
	case "correlation", "1-r":
		return DissimilarityCorrelation, nil
	}
	return "", fmt.Errorf("unknown dissimilarity %q", s)
}

// OrderKey identifies one of the channel orderings.
type OrderKey struct {
	Formula Formula
	Method  LinkageMethod
}

// ArtifactName returns the persisted name without extension, e.g. "order_P_single".
func (k OrderKey) ArtifactName() string {
	return "order_" + k.Formula.Code() + "_" + string(k.Method)
}

// ChannelOrder is a permutation of channel indices.
type ChannelOrder []int

// ErrNotPermutation is returned when a ChannelOrder is not a bijection over [0, n).
var ErrNotPermutation = errors.New("types: channel order is not a permutation")

// Validate checks that the order is a permutation of [0, n).
func (o ChannelOrder) Validate(n int) error {
	if len(o) != n {
		return fmt.Errorf("%w: length %d, want %d", ErrNotPermutation, len(o), n)
	}
	seen := make([]bool, n)
	for _, idx := range o {
		if idx < 0 || idx >= n || seen[idx] {
			return fmt.Errorf("%w: bad index %d", ErrNotPermutation, idx)
		}
		seen[idx] = true
	}
	return nil
}

// Inverse returns the permutation that maps a channel index to its position in o.
func (o ChannelOrder) Inverse() ChannelOrder {
	inv := make(ChannelOrder, len(o))
	for pos, idx := range o {
		inv[idx] = pos
	}
	return inv
}

// IdentityOrder returns [0, 1, ..., n-1].
func IdentityOrder(n int) ChannelOrder {
	o := make(ChannelOrder, n)
	for i := range o {
		o[i] = i
	}
	return o
}

// Merge is one row of a linkage: clusters A and B (A < B) joined at Distance into a cluster of Size leaves.
type Merge struct {
	A        int
	B        int
	Distance float64
	Size     int
}

// Linkage is the full merge history; cluster n+k is created by merge k.
type Linkage struct {
	Leaves int
	Merges []Merge
}

// Orderer derives channel orderings from correlation matrices.
type Orderer interface {
	ConnectLogger(...Logger)
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	Order(ctx context.Context, corr *CorrelationMatrix, method LinkageMethod) (ChannelOrder, error)
	OrderAll(ctx context.Context, matrices map[Formula]*CorrelationMatrix) (map[OrderKey]ChannelOrder, error)
}
