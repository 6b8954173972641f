package cluster_test

import (
	"context"
	"math"
	"testing"

	"github.com/joeydtaylor/electrode/pkg/internal/cluster"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineDistances returns |p_i - p_j| for points on a line.
func lineDistances(points ...float64) []float64 {
	n := len(points)
	d := make([]float64, n*n)
	for i := range points {
		for j := range points {
			d[i*n+j] = math.Abs(points[i] - points[j])
		}
	}
	return d
}

func blockCorrelation() *types.CorrelationMatrix {
	// channels 0 and 2 move together, as do 1 and 3
	return &types.CorrelationMatrix{
		Formula: types.FormulaPearson,
		N:       4,
		Data: []float64{
			1, -0.1, 0.9, -0.1,
			-0.1, 1, -0.1, 0.9,
			0.9, -0.1, 1, -0.1,
			-0.1, 0.9, -0.1, 1,
		},
	}
}

func TestLinkMergeHeights(t *testing.T) {
	dist := lineDistances(0, 1, 5, 6)
	cases := map[types.LinkageMethod]float64{
		types.MethodSingle:   4,
		types.MethodAverage:  5,
		types.MethodCentroid: 5,
		types.MethodWard:     math.Sqrt(50),
	}
	for method, root := range cases {
		l, err := cluster.Link(context.Background(), dist, 4, method)
		require.NoError(t, err, method)
		require.Len(t, l.Merges, 3, method)

		assert.Equal(t, types.Merge{A: 0, B: 1, Distance: 1, Size: 2}, l.Merges[0], method)
		assert.Equal(t, 2, l.Merges[1].A, method)
		assert.Equal(t, 3, l.Merges[1].B, method)
		assert.InDelta(t, 1.0, l.Merges[1].Distance, 1e-12, method)

		last := l.Merges[2]
		assert.Equal(t, 4, last.A, method)
		assert.Equal(t, 5, last.B, method)
		assert.Equal(t, 4, last.Size, method)
		assert.InDelta(t, root, last.Distance, 1e-9, method)
	}
}

func TestLeavesPreOrderLowerChildFirst(t *testing.T) {
	l, err := cluster.Link(context.Background(), lineDistances(0, 10, 1, 11), 4, types.MethodSingle)
	require.NoError(t, err)
	assert.Equal(t, types.ChannelOrder{0, 2, 1, 3}, cluster.Leaves(l))
}

func TestLeavesDegenerate(t *testing.T) {
	assert.Empty(t, cluster.Leaves(types.Linkage{}))
	assert.Equal(t, types.ChannelOrder{0}, cluster.Leaves(types.Linkage{Leaves: 1}))
}

func TestOrderGroupsCorrelatedChannels(t *testing.T) {
	for _, d := range []types.Dissimilarity{types.DissimilarityProfile, types.DissimilarityCorrelation} {
		o := cluster.NewOrderer(cluster.WithDissimilarity(d))
		for _, method := range types.Methods() {
			order, err := o.Order(context.Background(), blockCorrelation(), method)
			require.NoError(t, err)
			assert.Equal(t, types.ChannelOrder{0, 2, 1, 3}, order, "%s/%s", d, method)
		}
	}
}

func TestOrderIsPermutationWithInverse(t *testing.T) {
	n := 12
	corr := &types.CorrelationMatrix{Formula: types.FormulaKendall, N: n, Data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			corr.Data[i*n+j] = math.Cos(float64(i-j) * 0.7)
		}
	}
	for _, method := range types.Methods() {
		order, err := cluster.NewOrderer().Order(context.Background(), corr, method)
		require.NoError(t, err)
		require.NoError(t, order.Validate(n))

		inv := order.Inverse()
		for pos, ch := range order {
			assert.Equal(t, pos, inv[ch])
		}
	}
}

func TestOrderAllProducesTwelveOrders(t *testing.T) {
	base := blockCorrelation()
	matrices := map[types.Formula]*types.CorrelationMatrix{}
	for _, f := range types.Formulas() {
		c := *base
		c.Formula = f
		matrices[f] = &c
	}

	orders, err := cluster.NewOrderer().OrderAll(context.Background(), matrices)
	require.NoError(t, err)
	assert.Len(t, orders, 12)
	_, ok := orders[types.OrderKey{Formula: types.FormulaSpearman, Method: types.MethodWard}]
	assert.True(t, ok)
}

func TestOrderEdgeCases(t *testing.T) {
	o := cluster.NewOrderer()

	order, err := o.Order(context.Background(), &types.CorrelationMatrix{N: 1, Data: []float64{1}}, types.MethodWard)
	require.NoError(t, err)
	assert.Equal(t, types.ChannelOrder{0}, order)

	_, err = o.Order(context.Background(), &types.CorrelationMatrix{}, types.MethodWard)
	assert.ErrorIs(t, err, cluster.ErrEmpty)

	_, err = o.Order(context.Background(), &types.CorrelationMatrix{N: 2, Data: []float64{1, 0, 0}}, types.MethodWard)
	assert.ErrorIs(t, err, cluster.ErrNotSquare)

	_, err = o.Order(context.Background(), blockCorrelation(), types.LinkageMethod("median"))
	assert.ErrorIs(t, err, cluster.ErrUnknownMethod)
}

func TestLinkHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cluster.Link(ctx, lineDistances(0, 1, 2), 3, types.MethodAverage)
	assert.ErrorIs(t, err, context.Canceled)
}
