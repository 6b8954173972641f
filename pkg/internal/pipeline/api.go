package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/profile"
	"github.com/joeydtaylor/electrode/pkg/internal/store"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/logschema"
)

// ErrNoStore is returned by Run when no artifact store is configured.
var ErrNoStore = errors.New("pipeline: no artifact store configured")

func (p *Pipeline) stage(ctx context.Context, name string, res *Result, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.NotifyLoggers(types.InfoLevel, "stage started",
		logschema.FieldComponent, p.componentMetadata,
		logschema.FieldEvent, "stage_start",
		logschema.FieldStage, name,
	)

	start := time.Now()
	if p.meter != nil {
		p.meter.StartTimer(name)
	}
	err := fn()
	elapsed := time.Since(start)
	if p.meter != nil {
		elapsed = p.meter.StopTimer(name)
	}
	res.Stages[name] = elapsed

	if err != nil {
		p.NotifyLoggers(types.ErrorLevel, "stage failed",
			logschema.FieldComponent, p.componentMetadata,
			logschema.FieldEvent, "stage_error",
			logschema.FieldStage, name,
			logschema.FieldError, err,
		)
		return fmt.Errorf("pipeline: %s: %w", name, err)
	}
	p.NotifyLoggers(types.InfoLevel, "stage complete",
		logschema.FieldComponent, p.componentMetadata,
		logschema.FieldEvent, "stage_done",
		logschema.FieldStage, name,
		"elapsed", elapsed.String(),
	)
	return nil
}

func (p *Pipeline) signals(ctx context.Context) (*types.SignalMatrix, error) {
	if !p.reuseSignals && !p.reuseCorrelation {
		m, err := p.loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		if p.meter != nil {
			p.meter.AddMetric(types.MetricChannelsLoaded, uint64(m.Channels))
			p.meter.AddCount(types.MetricChannelsLoaded, uint64(m.Channels))
		}
		return m, store.SaveSignals(ctx, p.store, m)
	}

	rate := p.loader.SampleRate()
	var names []string
	manifest, err := store.LoadManifest(ctx, p.store)
	switch {
	case err == nil:
		if manifest.SampleRate > 0 {
			rate = manifest.SampleRate
		}
		names = manifest.Names
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	m, err := store.LoadSignals(ctx, p.store, rate)
	if err != nil {
		return nil, err
	}
	if len(names) == m.Channels {
		m.Names = names
	}
	return m, nil
}

func (p *Pipeline) correlations(ctx context.Context, signals *types.SignalMatrix) (map[types.Formula]*types.CorrelationMatrix, error) {
	if !p.reuseCorrelation {
		matrices, err := p.engine.ComputeAll(ctx, signals)
		if err != nil {
			return nil, err
		}
		for _, f := range types.Formulas() {
			if c, ok := matrices[f]; ok {
				if err := store.SaveCorrelation(ctx, p.store, c); err != nil {
					return nil, err
				}
			}
		}
		return matrices, nil
	}

	matrices := make(map[types.Formula]*types.CorrelationMatrix, 3)
	for _, f := range p.engine.Formulas() {
		c, err := store.LoadCorrelation(ctx, p.store, f)
		if err != nil {
			return nil, fmt.Errorf("reuse %s: %w", f, err)
		}
		if c.N != signals.Channels {
			return nil, fmt.Errorf("reuse %s: %d×%d matrix for %d channels", f, c.N, c.N, signals.Channels)
		}
		matrices[f] = c
	}
	return matrices, nil
}

// Run executes load, profile, correlate and cluster in order, then the optional export stage.
// Each stage's artifacts are written before the next stage begins, so a failed
// run leaves the completed stages reusable.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if p.store == nil {
		return nil, ErrNoStore
	}
	if p.meter != nil {
		p.engine.SetMeter(p.meter)
		p.orderer.SetMeter(p.meter)
	}

	start := time.Now()
	res := &Result{
		Stages:            make(map[string]time.Duration, 5),
		ReusedSignals:     p.reuseSignals || p.reuseCorrelation,
		ReusedCorrelation: p.reuseCorrelation,
	}

	var (
		signals  *types.SignalMatrix
		matrices map[types.Formula]*types.CorrelationMatrix
		orders   map[types.OrderKey]types.ChannelOrder
	)

	if err := p.stage(ctx, StageLoad, res, func() (err error) {
		signals, err = p.signals(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	res.Channels, res.Samples, res.SampleRate = signals.Channels, signals.Samples, signals.SampleRate

	if err := p.stage(ctx, StageProfile, res, func() error {
		profiles, err := profile.Compute(ctx, signals, p.meter)
		if err != nil {
			return err
		}
		return store.SaveProfiles(ctx, p.store, profiles)
	}); err != nil {
		return nil, err
	}

	if err := p.stage(ctx, StageCorrelate, res, func() (err error) {
		matrices, err = p.correlations(ctx, signals)
		return err
	}); err != nil {
		return nil, err
	}
	for _, f := range types.Formulas() {
		if _, ok := matrices[f]; ok {
			res.Formulas = append(res.Formulas, f)
		}
	}

	if err := p.stage(ctx, StageCluster, res, func() (err error) {
		orders, err = p.orderer.OrderAll(ctx, matrices)
		if err != nil {
			return err
		}
		for key, order := range orders {
			if err := store.SaveOrder(ctx, p.store, key, order); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	res.Orders = len(orders)

	manifest := store.Manifest{
		Channels:      signals.Channels,
		Samples:       signals.Samples,
		SampleRate:    signals.SampleRate,
		Names:         signals.Names,
		Formulas:      res.Formulas,
		Methods:       p.orderer.Methods(),
		Dissimilarity: p.orderer.Dissimilarity(),
		CreatedAt:     time.Now().UTC(),
	}
	if err := store.SaveManifest(ctx, p.store, manifest); err != nil {
		return nil, fmt.Errorf("pipeline: manifest: %w", err)
	}

	if p.exporter != nil {
		if err := p.stage(ctx, StageExport, res, func() (err error) {
			res.Exported, err = p.exporter.Export(ctx, p.store, matrices, orders)
			return err
		}); err != nil {
			return nil, err
		}
	}

	res.Elapsed = time.Since(start)
	p.NotifyLoggers(types.InfoLevel, "preprocessing complete",
		logschema.FieldComponent, p.componentMetadata,
		logschema.FieldEvent, "run_done",
		"channels", res.Channels,
		"samples", res.Samples,
		"orders", res.Orders,
		"elapsed", res.Elapsed.String(),
	)
	return res, nil
}
