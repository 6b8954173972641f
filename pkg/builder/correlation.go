package builder

import (
	"github.com/joeydtaylor/electrode/pkg/internal/correlation"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

type Formula = types.Formula

type CorrelationMatrix = types.CorrelationMatrix

const (
	FormulaPearson  = types.FormulaPearson
	FormulaSpearman = types.FormulaSpearman
	FormulaKendall  = types.FormulaKendall
)

func NewCorrelationEngine(options ...types.Option[*correlation.Engine]) *correlation.Engine {
	return correlation.NewEngine(options...)
}

func CorrelationWithLogger(loggers ...types.Logger) types.Option[*correlation.Engine] {
	return correlation.WithLogger(loggers...)
}

// CorrelationWithWorkers bounds how many matrix rows are computed at once.
func CorrelationWithWorkers(n int) types.Option[*correlation.Engine] {
	return correlation.WithWorkers(n)
}

func CorrelationWithFormulas(formulas ...types.Formula) types.Option[*correlation.Engine] {
	return correlation.WithFormulas(formulas...)
}

func CorrelationWithMeter(m types.Meter) types.Option[*correlation.Engine] {
	return correlation.WithMeter(m)
}

func CorrelationWithComponentMetadata(name string, id string) types.Option[*correlation.Engine] {
	return correlation.WithComponentMetadata(name, id)
}
