package builder

import (
	"github.com/joeydtaylor/electrode/pkg/internal/cluster"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

type LinkageMethod = types.LinkageMethod

type Dissimilarity = types.Dissimilarity

type ChannelOrder = types.ChannelOrder

type OrderKey = types.OrderKey

const (
	MethodSingle   = types.MethodSingle
	MethodAverage  = types.MethodAverage
	MethodCentroid = types.MethodCentroid
	MethodWard     = types.MethodWard

	DissimilarityProfile     = types.DissimilarityProfile
	DissimilarityCorrelation = types.DissimilarityCorrelation
)

func NewOrderer(options ...types.Option[*cluster.Orderer]) *cluster.Orderer {
	return cluster.NewOrderer(options...)
}

func OrdererWithLogger(loggers ...types.Logger) types.Option[*cluster.Orderer] {
	return cluster.WithLogger(loggers...)
}

func OrdererWithMethods(methods ...types.LinkageMethod) types.Option[*cluster.Orderer] {
	return cluster.WithMethods(methods...)
}

func OrdererWithDissimilarity(d types.Dissimilarity) types.Option[*cluster.Orderer] {
	return cluster.WithDissimilarity(d)
}

func OrdererWithMeter(m types.Meter) types.Option[*cluster.Orderer] {
	return cluster.WithMeter(m)
}

func OrdererWithComponentMetadata(name string, id string) types.Option[*cluster.Orderer] {
	return cluster.WithComponentMetadata(name, id)
}
