package cluster

import (
	"context"
	"fmt"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/logschema"
)

// Dendrogram returns the full linkage of corr under method.
func (o *Orderer) Dendrogram(ctx context.Context, corr *types.CorrelationMatrix, method types.LinkageMethod) (types.Linkage, error) {
	dist, err := Dissimilarities(corr, o.dissimilarity)
	if err != nil {
		return types.Linkage{}, err
	}
	return Link(ctx, dist, corr.N, method)
}

// Order returns the dendrogram leaf order of corr under method.
func (o *Orderer) Order(ctx context.Context, corr *types.CorrelationMatrix, method types.LinkageMethod) (types.ChannelOrder, error) {
	if err := validate(corr); err != nil {
		return nil, err
	}
	if corr.N == 1 {
		return types.ChannelOrder{0}, nil
	}

	l, err := o.Dendrogram(ctx, corr, method)
	if err != nil {
		return nil, err
	}
	order := Leaves(l)
	if err := order.Validate(corr.N); err != nil {
		return nil, fmt.Errorf("cluster: %s/%s: %w", corr.Formula, method, err)
	}

	o.NotifyLoggers(types.DebugLevel, "channel order computed",
		logschema.FieldComponent, o.componentMetadata,
		logschema.FieldEvent, "order",
		"formula", string(corr.Formula),
		"method", string(method),
		"dissimilarity", string(o.dissimilarity),
		"root_height", l.Merges[len(l.Merges)-1].Distance,
	)
	return order, nil
}

// OrderAll computes every configured method for every matrix, iterating formulas in artifact order.
func (o *Orderer) OrderAll(ctx context.Context, matrices map[types.Formula]*types.CorrelationMatrix) (map[types.OrderKey]types.ChannelOrder, error) {
	out := make(map[types.OrderKey]types.ChannelOrder, len(matrices)*len(o.methods))
	if o.meter != nil {
		o.meter.AddToMetricTotal(types.MetricOrdersComputed, uint64(len(matrices)*len(o.methods)))
	}
	for _, f := range types.Formulas() {
		corr, ok := matrices[f]
		if !ok {
			continue
		}
		for _, method := range o.methods {
			order, err := o.Order(ctx, corr, method)
			if err != nil {
				return nil, fmt.Errorf("cluster: %s/%s: %w", f, method, err)
			}
			out[types.OrderKey{Formula: f, Method: method}] = order
			if o.meter != nil {
				o.meter.IncrementCount(types.MetricOrdersComputed)
			}
		}
	}

	o.NotifyLoggers(types.InfoLevel, "channel orders computed",
		logschema.FieldComponent, o.componentMetadata,
		logschema.FieldEvent, "order_all",
		"orders", len(out),
	)
	return out, nil
}
