package common

import (
	"cmp"
	"slices"
)

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Dedupe returns a sorted copy of values with duplicates and empty entries removed.
// The input slice is never modified.
//
// Parameters:
//   - values: the values to normalize
//
// Returns:
//   - []T: a new, sorted slice holding each distinct non-zero value once
func Dedupe[T cmp.Ordered](values []T) []T {
	var zero T
	out := make([]T, 0, len(values))
	for _, v := range values {
		if v != zero {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// AlignUp rounds value up to the next multiple of alignment.
// An alignment of 0 or 1 returns value unchanged.
//
// Parameters:
//   - value: the value to round
//   - alignment: the required multiple
//
// Returns:
//   - uint64: the smallest multiple of alignment that is >= value
func AlignUp(value, alignment uint64) uint64 {
	if alignment <= 1 {
		return value
	}
	if rem := value % alignment; rem != 0 {
		return value + alignment - rem
	}
	return value
}
