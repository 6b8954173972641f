// Package view turns the preprocessed artifacts into Plotly figures. All
// inputs live in an immutable Context built once at startup; the only
// per-session state is the ViewMode carried in each Request.
package view

import (
	"errors"
	"fmt"

	"github.com/joeydtaylor/electrode/pkg/internal/store"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

// ErrShape reports artifacts whose dimensions disagree with each other.
var ErrShape = errors.New("view: artifact shapes disagree")

// Context holds the read-only artifacts every render works from.
type Context struct {
	signals      *types.SignalMatrix
	correlations map[types.Formula]*types.CorrelationMatrix
	orders       map[types.OrderKey]types.ChannelOrder
	profiles     []types.ChannelProfile
}

// NewContext validates a loaded bundle and wraps it for rendering.
func NewContext(b *store.Bundle) (*Context, error) {
	if b == nil || b.Signals == nil {
		return nil, fmt.Errorf("%w: no signal matrix", ErrShape)
	}
	s := b.Signals
	if s.Channels < 1 || s.Samples < 1 || len(s.Data) != s.Channels*s.Samples {
		return nil, fmt.Errorf("%w: signals %d×%d with %d values", ErrShape, s.Channels, s.Samples, len(s.Data))
	}

	c := &Context{
		signals:      s,
		correlations: make(map[types.Formula]*types.CorrelationMatrix, len(b.Correlations)),
		orders:       make(map[types.OrderKey]types.ChannelOrder, len(b.Orders)),
	}
	for f, m := range b.Correlations {
		if m == nil || m.N != s.Channels || len(m.Data) != m.N*m.N {
			return nil, fmt.Errorf("%w: %s correlation does not match %d channels", ErrShape, f, s.Channels)
		}
		c.correlations[f] = m
	}
	for k, o := range b.Orders {
		if err := o.Validate(s.Channels); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrShape, k.ArtifactName(), err)
		}
		c.orders[k] = o
	}
	if len(b.Profiles) > 0 {
		if len(b.Profiles) != s.Channels {
			return nil, fmt.Errorf("%w: %d profiles for %d channels", ErrShape, len(b.Profiles), s.Channels)
		}
		c.profiles = b.Profiles
	}
	return c, nil
}

// Channels returns the number of channels.
func (c *Context) Channels() int { return c.signals.Channels }

// Samples returns the padded sample count.
func (c *Context) Samples() int { return c.signals.Samples }

// SampleRate returns the recording sample rate in Hz.
func (c *Context) SampleRate() int { return c.signals.SampleRate }

// Names returns the source file name of each channel, possibly empty.
func (c *Context) Names() []string { return c.signals.Names }

// Lengths returns the native length of each channel.
func (c *Context) Lengths() []int { return c.signals.Lengths }

// Profiles returns the channel profiles, or nil when none were stored.
func (c *Context) Profiles() []types.ChannelProfile { return c.profiles }

// Formulas returns the formulas with a loaded matrix, in artifact order.
func (c *Context) Formulas() []types.Formula {
	var out []types.Formula
	for _, f := range types.Formulas() {
		if _, ok := c.correlations[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Methods returns "default" followed by every linkage method with at least one stored order.
func (c *Context) Methods() []types.LinkageMethod {
	out := []types.LinkageMethod{types.MethodDefault}
	for _, m := range types.Methods() {
		for _, f := range types.Formulas() {
			if _, ok := c.orders[types.OrderKey{Formula: f, Method: m}]; ok {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// Order returns the channel order for method under formula. The default
// method, or any missing combination, yields the identity order.
func (c *Context) Order(method types.LinkageMethod, formula types.Formula) types.ChannelOrder {
	if o, ok := c.orders[types.OrderKey{Formula: formula, Method: method}]; ok {
		return o
	}
	return types.IdentityOrder(c.signals.Channels)
}

// Correlation returns the matrix for formula, if loaded.
func (c *Context) Correlation(f types.Formula) (*types.CorrelationMatrix, bool) {
	m, ok := c.correlations[f]
	return m, ok
}
