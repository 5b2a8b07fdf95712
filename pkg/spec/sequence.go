package spec

import "iter"

// Filter returns the candidates satisfying s, preserving their relative order.
// The input slice is not modified.
func Filter[T any](candidates []T, s Specification[T]) []T {
	matched := make([]T, 0, len(candidates))
	for _, c := range candidates {
		if s.IsSatisfiedBy(c) {
			matched = append(matched, c)
		}
	}
	return matched
}

// Select lazily yields the candidates of seq satisfying s
func Select[T any](seq iter.Seq[T], s Specification[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for c := range seq {
			if s.IsSatisfiedBy(c) && !yield(c) {
				return
			}
		}
	}
}
