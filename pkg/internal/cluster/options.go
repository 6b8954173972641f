package cluster

import "github.com/joeydtaylor/electrode/pkg/internal/types"

// WithLogger attaches one or more loggers to the orderer.
func WithLogger(loggers ...types.Logger) types.Option[*Orderer] {
	return func(o *Orderer) {
		o.ConnectLogger(loggers...)
	}
}

// WithMethods restricts OrderAll to the given linkage methods.
func WithMethods(methods ...types.LinkageMethod) types.Option[*Orderer] {
	return func(o *Orderer) {
		o.SetMethods(methods...)
	}
}

// WithDissimilarity selects profile (Euclidean between correlation rows) or correlation (1-r) distances.
func WithDissimilarity(d types.Dissimilarity) types.Option[*Orderer] {
	return func(o *Orderer) {
		o.SetDissimilarity(d)
	}
}

// WithMeter reports produced orders to m.
func WithMeter(m types.Meter) types.Option[*Orderer] {
	return func(o *Orderer) {
		o.SetMeter(m)
	}
}

// WithComponentMetadata sets the orderer's name and id.
func WithComponentMetadata(name, id string) types.Option[*Orderer] {
	return func(o *Orderer) {
		o.SetComponentMetadata(name, id)
	}
}
