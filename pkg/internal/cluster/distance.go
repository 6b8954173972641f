package cluster

import (
	"fmt"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"gonum.org/v1/gonum/floats"
)

// Dissimilarities converts a correlation matrix into a dense n×n distance matrix.
//
// DissimilarityProfile treats row i as the observation vector of channel i and
// returns Euclidean distances between rows. DissimilarityCorrelation returns 1-r.
func Dissimilarities(corr *types.CorrelationMatrix, mode types.Dissimilarity) ([]float64, error) {
	if err := validate(corr); err != nil {
		return nil, err
	}
	n := corr.N
	d := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var v float64
			switch mode {
			case types.DissimilarityProfile, "":
				v = floats.Distance(corr.Row(i), corr.Row(j), 2)
			case types.DissimilarityCorrelation:
				v = 1 - corr.At(i, j)
				if v < 0 {
					v = 0
				}
			default:
				return nil, fmt.Errorf("cluster: unknown dissimilarity %q", mode)
			}
			d[i*n+j] = v
			d[j*n+i] = v
		}
	}
	return d, nil
}

func validate(corr *types.CorrelationMatrix) error {
	if corr == nil || corr.N == 0 {
		return ErrEmpty
	}
	if len(corr.Data) != corr.N*corr.N {
		return fmt.Errorf("%w: %d values for N=%d", ErrNotSquare, len(corr.Data), corr.N)
	}
	return nil
}
