// Package counter counts contiguous subarrays by the value of their maximum
// element.
//
// CountInRange answers "how many subarrays have a maximum in [left, right]" by
// subtracting two at-most counts:
//
//	CountInRange(s, left, right) = CountAtMost(s, right) - CountAtMost(s, left-1)
//
// Subarrays with max <= left-1 are a subset of those with max <= right, and
// the difference is exactly the set whose maximum lies in [left, right].
package counter

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// ErrInvalidBounds is returned when left > right.
var ErrInvalidBounds = errors.New("invalid bounds")

// CountAtMost returns the number of contiguous subarrays of values whose
// maximum element is <= limit. It runs in a single pass with O(1) extra space.
func CountAtMost[T constraints.Integer](values []T, limit T) int64 {
	var (
		count int64
		start int
	)

	for end, v := range values {
		// Only the element just appended can break the limit. Every subarray
		// ending at end contains it, so the window restarts past end.
		if v > limit {
			start = end + 1
		}
		// values[start:end+1] are all <= limit and start is minimal.
		count += int64(end - start + 1)
	}

	return count
}

// CountInRange returns the number of contiguous subarrays of values whose
// maximum element lies in [left, right] inclusive.
func CountInRange[T constraints.Integer](values []T, left, right T) (int64, error) {
	if left > right {
		return 0, fmt.Errorf("%w: left %d > right %d", ErrInvalidBounds, left, right)
	}

	upper := CountAtMost(values, right)

	// left-1 wraps when left is the smallest value of T; nothing can be
	// below it, so the lower count is zero.
	below := left - 1
	if below > left {
		return upper, nil
	}

	return upper - CountAtMost(values, below), nil
}

// Total returns n(n+1)/2, the number of non-empty contiguous subarrays of a
// sequence of length n.
func Total(n int) int64 {
	if n <= 0 {
		return 0
	}
	m := int64(n)
	return m * (m + 1) / 2
}
