package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Clamp limits v to [lo, hi]
func Clamp[A constraints.Ordered](v, lo, hi A) A {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Max returns the larger of two values
func Max[A constraints.Ordered](a, b A) A {
	if a > b {
		return a
	}
	return b
}

// SortedKeys returns the keys of m in ascending order
func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Lerp interpolates between a and b at t in [0,1]
func Lerp[A constraints.Float](a, b, t A) A {
	return a + (b-a)*t
}
