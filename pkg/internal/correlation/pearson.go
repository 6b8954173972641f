package correlation

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// standardized holds z-scored rows; constant rows are marked and left nil.
type standardized struct {
	rows     [][]float64
	constant []bool
	m        int
}

func standardize(rows [][]float64) standardized {
	s := standardized{
		rows:     make([][]float64, len(rows)),
		constant: make([]bool, len(rows)),
	}
	if len(rows) > 0 {
		s.m = len(rows[0])
	}
	for i, row := range rows {
		if len(row) < 2 {
			s.constant[i] = true
			continue
		}
		mean, std := stat.MeanStdDev(row, nil)
		if std == 0 || math.IsNaN(std) {
			s.constant[i] = true
			continue
		}
		z := make([]float64, len(row))
		copy(z, row)
		floats.AddConst(-mean, z)
		floats.Scale(1/std, z)
		s.rows[i] = z
	}
	return s
}

// pair returns the Pearson coefficient of rows i and j.
func (s standardized) pair(i, j int) (float64, bool) {
	if s.constant[i] || s.constant[j] {
		return 0, false
	}
	return floats.Dot(s.rows[i], s.rows[j]) / float64(s.m-1), true
}

// Pearson returns the Pearson correlation of x and y, with ok=false when either is constant.
func Pearson(x, y []float64) (float64, bool) {
	s := standardize([][]float64{x, y})
	r, ok := s.pair(0, 1)
	return clamp(r), ok
}

func clamp(r float64) float64 {
	switch {
	case math.IsNaN(r):
		return 0
	case r > 1:
		return 1
	case r < -1:
		return -1
	}
	return r
}
