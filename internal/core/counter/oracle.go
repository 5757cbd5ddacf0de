package counter

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// BruteForceInRange enumerates every subarray, tracking the running maximum
// as the right endpoint advances. It is O(n^2) and exists to cross-check
// CountInRange.
func BruteForceInRange[T constraints.Integer](values []T, left, right T) (int64, error) {
	if left > right {
		return 0, fmt.Errorf("%w: left %d > right %d", ErrInvalidBounds, left, right)
	}

	var count int64
	for i := range values {
		maxVal := values[i]
		for j := i; j < len(values); j++ {
			if values[j] > maxVal {
				maxVal = values[j]
			}
			if left <= maxVal && maxVal <= right {
				count++
			}
		}
	}

	return count, nil
}
