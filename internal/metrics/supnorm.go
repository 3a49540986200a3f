package metrics

import (
	"errors"
	"fmt"
	"math"
)

// ErrLengthMismatch indicates two sequences that cannot be compared pointwise.
var ErrLengthMismatch = errors.New("metrics: sequence length mismatch")

// SupNorm returns max_k |analytical[k] - numerical[k]|. A NaN anywhere
// makes the result NaN.
func SupNorm(analytical, numerical []float64) (float64, error) {
	if len(analytical) != len(numerical) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(analytical), len(numerical))
	}

	maxDiff := 0.0
	for k := range analytical {
		d := math.Abs(analytical[k] - numerical[k])
		if math.IsNaN(d) {
			return math.NaN(), nil
		}
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
