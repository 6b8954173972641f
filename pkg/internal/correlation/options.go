package correlation

import "github.com/joeydtaylor/electrode/pkg/internal/types"

// WithLogger attaches one or more loggers to the engine.
func WithLogger(loggers ...types.Logger) types.Option[*Engine] {
	return func(e *Engine) {
		e.ConnectLogger(loggers...)
	}
}

// WithWorkers bounds concurrent row computations. The result does not depend on the value.
func WithWorkers(n int) types.Option[*Engine] {
	return func(e *Engine) {
		e.SetWorkers(n)
	}
}

// WithFormulas restricts ComputeAll to the given formulas.
func WithFormulas(formulas ...types.Formula) types.Option[*Engine] {
	return func(e *Engine) {
		e.SetFormulas(formulas...)
	}
}

// WithMeter reports pair progress to m.
func WithMeter(m types.Meter) types.Option[*Engine] {
	return func(e *Engine) {
		e.SetMeter(m)
	}
}

// WithComponentMetadata sets the engine's name and id.
func WithComponentMetadata(name, id string) types.Option[*Engine] {
	return func(e *Engine) {
		e.SetComponentMetadata(name, id)
	}
}
