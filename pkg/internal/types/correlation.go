package types

import (
	"context"
	"fmt"
	"strings"
)

// Formula names a pairwise correlation measure.
type Formula string

const (
	FormulaPearson  Formula = "pearson"  // Linear, covariance based.
	FormulaSpearman Formula = "spearman" // Pearson over ranks.
	FormulaKendall  Formula = "kendall"  // Tau-b concordance.
)

// Formulas returns every supported formula in artifact order.
func Formulas() []Formula {
	return []Formula{FormulaPearson, FormulaSpearman, FormulaKendall}
}

// Code is the single-letter tag used in artifact names (corrP, order_P_ward, ...).
func (f Formula) Code() string {
	switch f {
	case FormulaPearson:
		return "P"
	case FormulaSpearman:
		return "S"
	case FormulaKendall:
		return "K"
	}
	return "?"
}

// ParseFormula accepts a formula name or its single-letter code, case-insensitively.
func ParseFormula(s string) (Formula, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pearson", "p":
		return FormulaPearson, nil
	case "spearman", "s":
		return FormulaSpearman, nil
	case "kendall", "k":
		return FormulaKendall, nil
	}
	return "", fmt.Errorf("unknown correlation formula %q", s)
}

// CorrelationMatrix is a symmetric N x N matrix with unit diagonal, stored row-major.
type CorrelationMatrix struct {
	Formula Formula
	N       int
	Data    []float64
}

// At returns entry (i, j).
func (c *CorrelationMatrix) At(i, j int) float64 {
	return c.Data[i*c.N+j]
}

// Row returns row i. The slice aliases the matrix and must not be modified.
func (c *CorrelationMatrix) Row(i int) []float64 {
	return c.Data[i*c.N : (i+1)*c.N]
}

// CorrelationEngine computes correlation matrices over a SignalMatrix.
type CorrelationEngine interface {
	ConnectLogger(...Logger)
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	Compute(ctx context.Context, signals *SignalMatrix, formula Formula) (*CorrelationMatrix, error)
	ComputeAll(ctx context.Context, signals *SignalMatrix) (map[Formula]*CorrelationMatrix, error)
}
