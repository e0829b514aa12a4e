// Package collections holds small generic helpers used by the reporting
// layer, adapted from the teacher's util package: transforming
// a slice, and iterating a map in deterministic key order so report output
// doesn't vary run to run with Go's randomized map iteration.
package collections

import (
	"iter"
	"sort"
)

// TransformSlice applies converter to each element of in and returns the
// results in the same order.
func TransformSlice[T any, R any](in []T, converter func(T) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = converter(v)
	}
	return out
}

// SortedMapIter yields m's entries in ascending key order.
func SortedMapIter[T any](m map[string]T) iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}
