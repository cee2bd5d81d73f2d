// Package euclid generates Euclidean rhythms: hits spread as evenly as
// possible over a number of steps.
package euclid

// Generate returns a step pattern with hits distributed over steps using
// Bjorklund's grouping algorithm. hits <= 0 gives all rests and hits >= steps
// gives all hits.
func Generate(hits, steps int) []bool {
	if steps <= 0 {
		return []bool{}
	}
	pattern := make([]bool, steps)
	if hits <= 0 {
		return pattern
	}
	if hits >= steps {
		for i := range pattern {
			pattern[i] = true
		}
		return pattern
	}

	groups := make([][]bool, 0, hits)
	for i := 0; i < hits; i++ {
		groups = append(groups, []bool{true})
	}
	remainder := make([][]bool, 0, steps-hits)
	for i := 0; i < steps-hits; i++ {
		remainder = append(remainder, []bool{false})
	}

	for len(remainder) > 1 {
		n := min(len(groups), len(remainder))
		paired := make([][]bool, n)
		for i := 0; i < n; i++ {
			g := make([]bool, 0, len(groups[i])+len(remainder[i]))
			g = append(g, groups[i]...)
			paired[i] = append(g, remainder[i]...)
		}

		if len(groups) > n {
			remainder = groups[n:]
		} else {
			remainder = remainder[n:]
		}
		groups = paired
	}

	pattern = pattern[:0]
	for _, g := range groups {
		pattern = append(pattern, g...)
	}
	for _, g := range remainder {
		pattern = append(pattern, g...)
	}
	return pattern
}

// Rotate shifts pattern left by rotation steps, wrapping around. Negative
// rotations shift right.
func Rotate(pattern []bool, rotation int) []bool {
	n := len(pattern)
	out := make([]bool, n)
	if n == 0 {
		return out
	}
	r := ((rotation % n) + n) % n
	for i := range pattern {
		out[i] = pattern[(i+r)%n]
	}
	return out
}

// Steps returns the indices of the hits in pattern
func Steps(pattern []bool) []int {
	steps := make([]int, 0, len(pattern))
	for i, hit := range pattern {
		if hit {
			steps = append(steps, i)
		}
	}
	return steps
}

// String renders a pattern as x and . characters
func String(pattern []bool) string {
	b := make([]byte, len(pattern))
	for i, hit := range pattern {
		if hit {
			b[i] = 'x'
		} else {
			b[i] = '.'
		}
	}
	return string(b)
}
