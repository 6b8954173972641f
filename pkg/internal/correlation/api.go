package correlation

import (
	"context"
	"fmt"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/logschema"
	"golang.org/x/sync/errgroup"
)

// pairFunc returns the coefficient for rows i < j; ok=false marks an undefined pair.
type pairFunc func(i, j int, scratch *scratch) (float64, bool)

type scratch struct {
	ys  []float64
	tmp []float64
}

// truncate returns per-channel views of the first MinLength samples.
func truncate(signals *types.SignalMatrix) [][]float64 {
	m := signals.MinLength()
	if m > signals.Samples {
		m = signals.Samples
	}
	rows := make([][]float64, signals.Channels)
	for ch := range rows {
		rows[ch] = signals.Row(ch)[:m]
	}
	return rows
}

func prepare(formula types.Formula, rows [][]float64) (pairFunc, []bool, error) {
	switch formula {
	case types.FormulaPearson:
		s := standardize(rows)
		return func(i, j int, _ *scratch) (float64, bool) { return s.pair(i, j) }, s.constant, nil
	case types.FormulaSpearman:
		ranked := make([][]float64, len(rows))
		for i, row := range rows {
			ranked[i] = Rank(row)
		}
		s := standardize(ranked)
		return func(i, j int, _ *scratch) (float64, bool) { return s.pair(i, j) }, s.constant, nil
	case types.FormulaKendall:
		krows := make([]kendallRow, len(rows))
		constant := make([]bool, len(rows))
		for i, row := range rows {
			krows[i] = newKendallRow(row)
			m := int64(len(row))
			constant[i] = m < 2 || krows[i].ties == m*(m-1)/2
		}
		return func(i, j int, sc *scratch) (float64, bool) {
			if constant[i] || constant[j] {
				return 0, false
			}
			return kendallTauB(krows[i], rows[j], krows[j].ties, sc.ys, sc.tmp)
		}, constant, nil
	}
	return nil, nil, fmt.Errorf("correlation: unsupported formula %q", formula)
}

// Compute returns the n×n matrix for one formula.
func (e *Engine) Compute(ctx context.Context, signals *types.SignalMatrix, formula types.Formula) (*types.CorrelationMatrix, error) {
	if signals == nil || signals.Channels == 0 {
		return nil, fmt.Errorf("correlation: empty signal matrix")
	}
	start := time.Now()
	rows := truncate(signals)
	n := len(rows)

	pair, constant, err := prepare(formula, rows)
	if err != nil {
		return nil, err
	}
	for ch, c := range constant {
		if c {
			e.NotifyLoggers(types.WarnLevel, "zero-variance channel correlates as 0",
				logschema.FieldComponent, e.componentMetadata,
				logschema.FieldEvent, "zero_variance",
				"formula", string(formula),
				"channel", ch,
			)
		}
	}

	out := &types.CorrelationMatrix{Formula: formula, N: n, Data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		out.Data[i*n+i] = 1
	}
	if e.meter != nil {
		e.meter.AddToMetricTotal(types.MetricCorrelationPairs, uint64(n*(n-1)/2))
	}

	m := 0
	if n > 0 {
		m = len(rows[0])
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < n-1; i++ {
		i := i
		g.Go(func() error {
			sc := &scratch{ys: make([]float64, m), tmp: make([]float64, m)}
			for j := i + 1; j < n; j++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				r, _ := pair(i, j, sc)
				r = clamp(r)
				out.Data[i*n+j] = r
				out.Data[j*n+i] = r
			}
			if e.meter != nil {
				e.meter.AddCount(types.MetricCorrelationPairs, uint64(n-1-i))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("correlation: %s: %w", formula, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("correlation: %s: %w", formula, err)
	}

	e.NotifyLoggers(types.InfoLevel, "correlation matrix computed",
		logschema.FieldComponent, e.componentMetadata,
		logschema.FieldEvent, "compute",
		"formula", string(formula),
		"channels", n,
		"samples", m,
		"workers", e.workers,
		"duration", time.Since(start).String(),
	)
	return out, nil
}

// ComputeAll computes every configured formula in order.
func (e *Engine) ComputeAll(ctx context.Context, signals *types.SignalMatrix) (map[types.Formula]*types.CorrelationMatrix, error) {
	out := make(map[types.Formula]*types.CorrelationMatrix, len(e.formulas))
	for _, f := range e.formulas {
		c, err := e.Compute(ctx, signals, f)
		if err != nil {
			return nil, err
		}
		out[f] = c
	}
	return out, nil
}

// Formulas returns the formulas ComputeAll produces.
func (e *Engine) Formulas() []types.Formula {
	return append([]types.Formula(nil), e.formulas...)
}
