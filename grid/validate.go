package grid

import (
	"fmt"
	"math"
)

// validateAxis returns an error if axis is not strictly ascending or
// contains a non-finite value.
func validateAxis(name string, axis []float64) error {
	if len(axis) < 2 {
		return fmt.Errorf("grid: %s axis needs at least 2 points, got %d", name, len(axis))
	}
	for i, v := range axis {
		if !isFinite(v) {
			return fmt.Errorf("grid: %s axis has non-finite value at index %d", name, i)
		}
		if i > 0 && axis[i] <= axis[i-1] {
			return fmt.Errorf("grid: %s axis not strictly ascending at index %d", name, i)
		}
	}
	return nil
}

// validateVar returns an error if the flattened array length doesn't match
// the expected product of axis lengths, or if it contains non-finite
// values once missing-value substitution (see sanitize) has already run.
func validateVar(name string, data []float64, want int) error {
	if len(data) != want {
		return fmt.Errorf("grid: variable %q has length %d, want %d", name, len(data), want)
	}
	for i, v := range data {
		if !isFinite(v) {
			return fmt.Errorf("grid: variable %q has non-finite value at flattened index %d", name, i)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
