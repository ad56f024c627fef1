// Package sliceutil provides generic helpers over slices.
package sliceutil

// Map applies f to each element of s and returns the results in order.
func Map[S ~[]E, E, V any](s S, f func(E) V) []V {
	values := make([]V, len(s))
	for i, e := range s {
		values[i] = f(e)
	}

	return values
}

// Filter returns the elements of s for which f returns true, in order.
func Filter[S ~[]E, E any](s S, f func(E) bool) S {
	result := make(S, 0, len(s))
	for _, e := range s {
		if f(e) {
			result = append(result, e)
		}
	}

	return result
}

// KeyBy returns a map of (f(e), e) pairs. Later elements win on key
// collisions.
func KeyBy[S ~[]E, E any, K comparable](s S, f func(E) K) map[K]E {
	m := make(map[K]E, len(s))
	for _, e := range s {
		m[f(e)] = e
	}

	return m
}
