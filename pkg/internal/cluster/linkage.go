package cluster

import (
	"context"
	"fmt"
	"math"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

// squared reports whether the method's Lance–Williams update runs on squared distances.
func squared(method types.LinkageMethod) bool {
	return method == types.MethodWard || method == types.MethodCentroid
}

// update returns the distance from cluster k to the union of clusters i and j.
func update(method types.LinkageMethod, dki, dkj, dij float64, ni, nj, nk int) float64 {
	fi, fj, fk := float64(ni), float64(nj), float64(nk)
	switch method {
	case types.MethodSingle:
		return math.Min(dki, dkj)
	case types.MethodAverage:
		return (fi*dki + fj*dkj) / (fi + fj)
	case types.MethodCentroid:
		return (fi*dki+fj*dkj)/(fi+fj) - fi*fj*dij/((fi+fj)*(fi+fj))
	case types.MethodWard:
		return ((fi+fk)*dki + (fj+fk)*dkj - fk*dij) / (fi + fj + fk)
	}
	return math.NaN()
}

// Link runs agglomerative clustering on a dense n×n distance matrix.
//
// Merges follow the scipy convention: row k joins clusters A < B into cluster
// n+k. Among equal minimum distances the pair with the lowest (i, j) active
// slot indices merges first.
func Link(ctx context.Context, dist []float64, n int, method types.LinkageMethod) (types.Linkage, error) {
	switch method {
	case types.MethodSingle, types.MethodAverage, types.MethodCentroid, types.MethodWard:
	default:
		return types.Linkage{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if n == 0 {
		return types.Linkage{}, ErrEmpty
	}
	if len(dist) != n*n {
		return types.Linkage{}, fmt.Errorf("%w: %d distances for n=%d", ErrNotSquare, len(dist), n)
	}

	d := make([]float64, n*n)
	copy(d, dist)
	sq := squared(method)
	if sq {
		for k, v := range d {
			d[k] = v * v
		}
	}

	ids := make([]int, n)
	sizes := make([]int, n)
	active := make([]bool, n)
	for i := range ids {
		ids[i] = i
		sizes[i] = 1
		active[i] = true
	}

	out := types.Linkage{Leaves: n, Merges: make([]types.Merge, 0, n-1)}
	for step := 0; step < n-1; step++ {
		if err := ctx.Err(); err != nil {
			return types.Linkage{}, err
		}

		bi, bj := -1, -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if active[j] && d[i*n+j] < best {
					best, bi, bj = d[i*n+j], i, j
				}
			}
		}
		if bi < 0 {
			// Only NaN distances remain; merge the first two active slots.
			for i := 0; i < n && bj < 0; i++ {
				if !active[i] {
					continue
				}
				if bi < 0 {
					bi = i
				} else {
					bj = i
				}
			}
			best = 0
		}

		height := best
		if sq {
			height = math.Sqrt(math.Max(best, 0))
		}
		a, b := ids[bi], ids[bj]
		if a > b {
			a, b = b, a
		}
		out.Merges = append(out.Merges, types.Merge{A: a, B: b, Distance: height, Size: sizes[bi] + sizes[bj]})

		dij := d[bi*n+bj]
		for k := 0; k < n; k++ {
			if !active[k] || k == bi || k == bj {
				continue
			}
			v := update(method, d[k*n+bi], d[k*n+bj], dij, sizes[bi], sizes[bj], sizes[k])
			if v < 0 {
				v = 0
			}
			d[k*n+bi] = v
			d[bi*n+k] = v
		}
		ids[bi] = n + step
		sizes[bi] += sizes[bj]
		active[bj] = false
	}
	return out, nil
}

// Leaves returns the dendrogram's leaves left to right: a pre-order traversal
// that visits the lower-numbered child of every merge first.
func Leaves(l types.Linkage) types.ChannelOrder {
	n := l.Leaves
	if n == 0 {
		return types.ChannelOrder{}
	}
	if len(l.Merges) == 0 {
		return types.IdentityOrder(n)
	}

	order := make(types.ChannelOrder, 0, n)
	stack := []int{n + len(l.Merges) - 1}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id < n {
			order = append(order, id)
			continue
		}
		m := l.Merges[id-n]
		// push B first so A is visited first
		stack = append(stack, m.B, m.A)
	}
	return order
}
