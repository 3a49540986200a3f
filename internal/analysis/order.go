package analysis

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrLengthMismatch = errors.New("analysis: step sizes and errors differ in length")
	ErrTooFewPoints   = errors.New("analysis: at least two points required")
	ErrNonPositive    = errors.New("analysis: step sizes and errors must be positive")
)

func checkPairs(dts, errs []float64) error {
	if len(dts) != len(errs) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(dts), len(errs))
	}
	if len(dts) < 2 {
		return ErrTooFewPoints
	}
	for k := range dts {
		if !(dts[k] > 0) || !(errs[k] > 0) {
			return fmt.Errorf("%w: dt=%v err=%v at index %d", ErrNonPositive, dts[k], errs[k], k)
		}
	}
	return nil
}

// ObservedOrders returns log(e_k/e_{k+1}) / log(dt_k/dt_{k+1}) for each
// neighbouring pair.
func ObservedOrders(dts, errs []float64) ([]float64, error) {
	if err := checkPairs(dts, errs); err != nil {
		return nil, err
	}

	orders := make([]float64, len(dts)-1)
	for k := range orders {
		orders[k] = math.Log(errs[k]/errs[k+1]) / math.Log(dts[k]/dts[k+1])
	}
	return orders, nil
}

// FitOrder fits log(err) = p*log(dt) + c and returns p.
func FitOrder(dts, errs []float64) (float64, error) {
	if err := checkPairs(dts, errs); err != nil {
		return 0, err
	}

	n := float64(len(dts))
	var sx, sy, sxx, sxy float64
	for k := range dts {
		x := math.Log(dts[k])
		y := math.Log(errs[k])
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}

	den := n*sxx - sx*sx
	if den == 0 {
		return 0, fmt.Errorf("%w: step sizes are all equal", ErrTooFewPoints)
	}
	return (n*sxy - sx*sy) / den, nil
}

// IsNonIncreasing reports whether errs[k+1] <= errs[k]*(1+tol) for all k.
func IsNonIncreasing(errs []float64, tol float64) bool {
	for k := 1; k < len(errs); k++ {
		if errs[k] > errs[k-1]*(1+tol) {
			return false
		}
	}
	return true
}

// LargestStepWithin returns the largest dt whose error is at most tol.
// ok is false when no step qualifies.
func LargestStepWithin(dts, errs []float64, tol float64) (dt float64, ok bool, err error) {
	if len(dts) != len(errs) {
		return 0, false, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(dts), len(errs))
	}

	for k := range dts {
		if errs[k] <= tol && (!ok || dts[k] > dt) {
			dt = dts[k]
			ok = true
		}
	}
	return dt, ok, nil
}
